package utils

const (
	// Settlement statuses
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusDisputed  = "disputed"

	// Batch statuses. New batches start at ready; draft and processing
	// occur in persisted rows and pass through reads unchanged.
	BatchStatusDraft      = "draft"
	BatchStatusReady      = "ready"
	BatchStatusProcessing = "processing"
	BatchStatusCompleted  = "completed"
	BatchStatusCancelled  = "cancelled"

	// Settlement methods
	MethodCash         = "cash"
	MethodUPI          = "upi"
	MethodBankTransfer = "bank_transfer"
	MethodWallet       = "wallet"
	MethodOther        = "other"

	// HTTP status messages
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0

	// Balances within this distance of zero are considered settled
	SettledEpsilon = 0.01
)
