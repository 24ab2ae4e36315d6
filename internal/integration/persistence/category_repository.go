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

// visibleToUser restricts categories to global ones and those owned by the user.
const visibleToUser = "(user_id IS NULL OR user_id = ?)"

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	conn
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB, timeout time.Duration) adapter.CategoryRepository {
	return &categoryRepository{conn: newConn(db, timeout)}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	db, cancel := r.query(ctx)
	defer cancel()

	categoryModel := model.CategoryFromEntity(category)
	if err := db.Create(categoryModel).Error; err != nil {
		return classifyStoreError("category.create", err)
	}
	category.ID = categoryModel.ID
	return nil
}

// FindVisibleByID retrieves a category the user may reference.
func (r *categoryRepository) FindVisibleByID(ctx context.Context, userID uuid.UUID, id int64) (*entity.Category, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var categoryModel model.CategoryModel
	err := db.Where("id = ?", id).Where(visibleToUser, userID).First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, classifyStoreError("category.find_visible", err)
	}
	return categoryModel.ToEntity(), nil
}

// FindGlobalByName returns the oldest global category with the name, or nil.
func (r *categoryRepository) FindGlobalByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findFirst(ctx, "category.find_global_by_name", "user_id IS NULL AND name = ?", name)
}

// FindOwnedByName returns the oldest category of the user with the name, or nil.
func (r *categoryRepository) FindOwnedByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	return r.findFirst(ctx, "category.find_owned_by_name", "user_id = ? AND name = ?", userID, name)
}

func (r *categoryRepository) findFirst(ctx context.Context, op string, query string, args ...interface{}) (*entity.Category, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var categoryModel model.CategoryModel
	err := db.Where(query, args...).Order("id ASC").First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyStoreError(op, err)
	}
	return categoryModel.ToEntity(), nil
}

// ListVisible returns active visible categories, global ones first, then by name.
func (r *categoryRepository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var categoryModels []model.CategoryModel
	err := db.
		Where("is_active = ?", true).
		Where(visibleToUser, userID).
		Order("CASE WHEN user_id IS NULL THEN 0 ELSE 1 END, name ASC, id ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, classifyStoreError("category.list_visible", err)
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// NamesByID resolves names of the visible categories among ids. Unknown or
// foreign ids are simply absent from the result.
func (r *categoryRepository) NamesByID(ctx context.Context, userID uuid.UUID, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	db, cancel := r.query(ctx)
	defer cancel()

	var categoryModels []model.CategoryModel
	err := db.Select("id", "name").
		Where("id IN ?", ids).
		Where(visibleToUser, userID).
		Find(&categoryModels).Error
	if err != nil {
		return nil, classifyStoreError("category.names_by_id", err)
	}

	for _, cm := range categoryModels {
		names[cm.ID] = cm.Name
	}
	return names, nil
}
