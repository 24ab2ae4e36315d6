// Package profile contains the user profile use cases.
package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetProfileInput represents the input for reading a profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the caller's profile.
type GetProfileOutput struct {
	Profile *entity.Profile
}

// GetProfileUseCase returns the caller's profile, creating it with defaults on first access.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

// Execute reads the profile, inserting the default one when absent.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := loadOrCreate(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: profile}, nil
}

// loadOrCreate is safe against concurrent first access: the insert ignores
// conflicts and the row is read back either way.
func loadOrCreate(ctx context.Context, repo adapter.ProfileRepository, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	if err := repo.CreateIfAbsent(ctx, entity.NewDefaultProfile(userID)); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Profile created with defaults", "user_id", userID)

	profile, err = repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile for user %s missing after create", userID)
	}
	return profile, nil
}
