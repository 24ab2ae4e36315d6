package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	conn
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB, timeout time.Duration) adapter.ProfileRepository {
	return &profileRepository{conn: newConn(db, timeout)}
}

// FindByUserID returns the profile of the user, or nil when none exists.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var profileModel model.ProfileModel
	err := db.Where("user_id = ?", userID).First(&profileModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyStoreError("profile.find", err)
	}
	return profileModel.ToEntity(), nil
}

// CreateIfAbsent inserts the profile; an existing row for the user wins.
func (r *profileRepository) CreateIfAbsent(ctx context.Context, profile *entity.Profile) error {
	db, cancel := r.query(ctx)
	defer cancel()

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(model.ProfileFromEntity(profile)).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return classifyStoreError("profile.create", err)
	}
	return nil
}

// Update writes every mutable field of the profile.
func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	db, cancel := r.query(ctx)
	defer cancel()

	err := db.Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"base_salary":   profile.BaseSalary,
			"saving_rate":   profile.SavingRate,
			"currency_code": profile.CurrencyCode,
			"timezone":      profile.Timezone,
			"locale":        profile.Locale,
			"display_name":  profile.DisplayName,
			"updated_at":    profile.UpdatedAt,
		}).Error
	return classifyStoreError("profile.update", err)
}
