package utils

import (
	"fmt"
)

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateMethod checks that a settlement method is one of the known set.
// An empty method is allowed; it defaults at creation time.
func ValidateMethod(method string) error {
	switch method {
	case "", MethodCash, MethodUPI, MethodBankTransfer, MethodWallet, MethodOther:
		return nil
	}
	return NewValidationError(fmt.Sprintf("unknown settlement method %q", method))
}

// ValidateDistinctParties checks that a transfer is not a self-payment.
func ValidateDistinctParties(fromUserID, toUserID string) error {
	if fromUserID == toUserID {
		return NewValidationError("cannot settle with yourself")
	}
	return nil
}
