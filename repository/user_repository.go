// repository/user_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/splitsettle/splitsettle-backend/models"
)

// UserRepository is the user directory capability
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// ResolveUser retrieves a user by id
func (r *UserRepository) ResolveUser(id string) (*models.Member, error) {
	var member models.Member
	err := r.DB.QueryRow(
		"SELECT id, name FROM users WHERE id = $1",
		id,
	).Scan(&member.ID, &member.Name)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return &member, nil
}
