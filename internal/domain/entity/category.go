// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a transaction category. A nil UserID marks a global
// category shared by every user.
type Category struct {
	ID        int64
	Name      string
	UserID    *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
}

// NewUserCategory creates an active category owned by userID.
func NewUserCategory(userID uuid.UUID, name string) *Category {
	owner := userID
	return &Category{
		Name:      name,
		UserID:    &owner,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// IsGlobal reports whether the category is shared by all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}

// VisibleTo reports whether userID may reference the category.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.UserID == nil || *c.UserID == userID
}
