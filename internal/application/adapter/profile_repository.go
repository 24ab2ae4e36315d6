package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ProfileRepository defines the interface for profile persistence operations.
type ProfileRepository interface {
	// FindByUserID returns the user's profile, or nil when none exists yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// CreateIfAbsent inserts the profile unless one already exists for the user.
	CreateIfAbsent(ctx context.Context, profile *entity.Profile) error

	// Update writes every mutable field of the profile.
	Update(ctx context.Context, profile *entity.Profile) error
}
