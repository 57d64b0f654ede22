// Package manager defines the bank employee identity that approves or denies
// client workflow requests.
package manager

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("manager name cannot be empty")
	ErrEmptyCode = errors.New("manager code cannot be empty")
)

// Manager is an approver identity with a unique code.
type Manager struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// NewManager creates a manager with the given unique code.
func NewManager(name, code string) (*Manager, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if code == "" {
		return nil, ErrEmptyCode
	}

	return &Manager{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		CreatedAt: time.Now(),
	}, nil
}
