package domain

import (
	"fmt"
	"time"
)

// Role is the coarse permission class of an Identity.
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
)

// ParseRole converts raw input into a Role. An empty string yields RoleUser;
// anything else must be exactly "user" or "trainer".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleTrainer:
		return RoleTrainer, nil
	default:
		return "", fmt.Errorf("%w: role must be either 'user' or 'trainer'", ErrInvalidInput)
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTrainer
}

func (r Role) String() string { return string(r) }

// Identity is a registered principal. PasswordHash never leaves the process.
type Identity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Identity) IsTrainer() bool {
	return i != nil && i.Role == RoleTrainer
}

// IdentityPatch carries the mutable identity fields; nil means unchanged.
type IdentityPatch struct {
	Name  *string
	Email *string
}

func (p IdentityPatch) Empty() bool {
	return p.Name == nil && p.Email == nil
}
