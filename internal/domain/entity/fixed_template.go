package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Due day bounds for fixed templates.
const (
	MinDueDay = 1
	MaxDueDay = 31
)

// FixedTemplate is a user's recurring obligation definition, such as rent.
type FixedTemplate struct {
	ID         int64
	UserID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	CategoryID *int64
	DueDay     *int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewFixedTemplate creates an active template.
func NewFixedTemplate(userID uuid.UUID, name string, amount decimal.Decimal, categoryID *int64, dueDay *int) *FixedTemplate {
	now := time.Now().UTC()
	return &FixedTemplate{
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
		DueDay:     dueDay,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Snapshot freezes the template's current values for an instance.
func (t *FixedTemplate) Snapshot() FixedSnapshot {
	s := FixedSnapshot{Name: t.Name, Amount: t.Amount}
	if t.DueDay != nil {
		day := *t.DueDay
		s.DueDay = &day
	}
	return s
}

// FixedTemplatePatch lists template fields that may change. Nil means
// untouched; the Clear flags reset the optional fields to null.
type FixedTemplatePatch struct {
	Name            *string
	Amount          *decimal.Decimal
	CategoryID      *int64
	DueDay          *int
	ClearCategoryID bool
	ClearDueDay     bool
}

// IsEmpty reports whether the patch changes nothing.
func (p FixedTemplatePatch) IsEmpty() bool {
	return p.Name == nil && p.Amount == nil && p.CategoryID == nil && p.DueDay == nil &&
		!p.ClearCategoryID && !p.ClearDueDay
}

// Apply writes the patch onto the template.
func (p FixedTemplatePatch) Apply(t *FixedTemplate) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	switch {
	case p.ClearCategoryID:
		t.CategoryID = nil
	case p.CategoryID != nil:
		t.CategoryID = p.CategoryID
	}
	switch {
	case p.ClearDueDay:
		t.DueDay = nil
	case p.DueDay != nil:
		t.DueDay = p.DueDay
	}
	t.UpdatedAt = time.Now().UTC()
}
