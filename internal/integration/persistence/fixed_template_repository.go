package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// fixedTemplateRepository implements the adapter.FixedTemplateRepository interface.
type fixedTemplateRepository struct {
	conn
}

// NewFixedTemplateRepository creates a new template repository instance.
func NewFixedTemplateRepository(db *gorm.DB, timeout time.Duration) adapter.FixedTemplateRepository {
	return &fixedTemplateRepository{conn: newConn(db, timeout)}
}

// Create creates a new template in the database.
func (r *fixedTemplateRepository) Create(ctx context.Context, template *entity.FixedTemplate) error {
	db, cancel := r.query(ctx)
	defer cancel()

	templateModel := model.FixedTemplateFromEntity(template)
	if err := db.Create(templateModel).Error; err != nil {
		return classifyStoreError("fixed_template.create", err)
	}
	template.ID = templateModel.ID
	return nil
}

// FindOwnedByID retrieves a template owned by the user.
func (r *fixedTemplateRepository) FindOwnedByID(ctx context.Context, userID uuid.UUID, id int64) (*entity.FixedTemplate, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var templateModel model.FixedTemplateModel
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&templateModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTemplateNotFound
		}
		return nil, classifyStoreError("fixed_template.find", err)
	}
	return templateModel.ToEntity(), nil
}

// ListActive returns the user's active templates ordered by name.
func (r *fixedTemplateRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]*entity.FixedTemplate, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var templateModels []model.FixedTemplateModel
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC, id ASC").
		Find(&templateModels).Error
	if err != nil {
		return nil, classifyStoreError("fixed_template.list_active", err)
	}

	templates := make([]*entity.FixedTemplate, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToEntity()
	}
	return templates, nil
}

// Update writes the template's mutable fields.
func (r *fixedTemplateRepository) Update(ctx context.Context, template *entity.FixedTemplate) error {
	db, cancel := r.query(ctx)
	defer cancel()

	result := db.Model(&model.FixedTemplateModel{}).
		Where("id = ? AND user_id = ?", template.ID, template.UserID).
		Updates(map[string]interface{}{
			"name":        template.Name,
			"amount":      template.Amount,
			"category_id": template.CategoryID,
			"due_day":     template.DueDay,
			"updated_at":  template.UpdatedAt,
		})
	if result.Error != nil {
		return classifyStoreError("fixed_template.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTemplateNotFound
	}
	return nil
}

// Deactivate clears is_active so the template stops materializing.
func (r *fixedTemplateRepository) Deactivate(ctx context.Context, userID uuid.UUID, id int64) error {
	db, cancel := r.query(ctx)
	defer cancel()

	result := db.Model(&model.FixedTemplateModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return classifyStoreError("fixed_template.deactivate", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTemplateNotFound
	}
	return nil
}
