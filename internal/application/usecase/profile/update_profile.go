package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateProfileInput represents the input for patching a profile.
type UpdateProfileInput struct {
	UserID uuid.UUID
	Patch  entity.ProfilePatch
}

// UpdateProfileOutput represents the profile after the patch.
type UpdateProfileOutput struct {
	Profile *entity.Profile
}

// UpdateProfileUseCase applies a partial update to the caller's profile.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(profileRepo adapter.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: profileRepo}
}

// Execute validates the patch, then writes it over the stored (or default) profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	patch := input.Patch
	if patch.IsEmpty() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeEmptyProfilePatch,
			"nothing to update",
			domainerror.ErrEmptyProfilePatch,
		)
	}
	if patch.BaseSalary != nil && (patch.BaseSalary.IsNegative() || !entity.IsStorableAmount(*patch.BaseSalary)) {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidBaseSalary,
			"base_salary must be zero or positive with at most two decimals",
			domainerror.ErrInvalidBaseSalary,
		)
	}
	if patch.SavingRate != nil && (patch.SavingRate.IsNegative() || patch.SavingRate.GreaterThan(decimal.NewFromInt(1)) || !entity.IsStorableRate(*patch.SavingRate)) {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidSavingRate,
			"saving_rate must be between 0 and 1 with at most four decimals",
			domainerror.ErrInvalidSavingRate,
		)
	}

	profile, err := loadOrCreate(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if patch.BaseSalary != nil {
		profile.BaseSalary = *patch.BaseSalary
	}
	if patch.SavingRate != nil {
		profile.SavingRate = *patch.SavingRate
	}
	if patch.CurrencyCode != nil {
		profile.CurrencyCode = strings.ToUpper(strings.TrimSpace(*patch.CurrencyCode))
	}
	if patch.Timezone != nil {
		profile.Timezone = strings.TrimSpace(*patch.Timezone)
	}
	if patch.Locale != nil {
		profile.Locale = strings.TrimSpace(*patch.Locale)
	}
	if patch.DisplayName != nil {
		profile.DisplayName = patch.DisplayName
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Profile updated", "user_id", input.UserID)
	return &UpdateProfileOutput{Profile: profile}, nil
}
