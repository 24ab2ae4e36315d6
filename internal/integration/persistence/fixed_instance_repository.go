package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// fixedInstanceRepository implements the adapter.FixedInstanceRepository interface.
type fixedInstanceRepository struct {
	conn
}

// NewFixedInstanceRepository creates a new instance repository.
func NewFixedInstanceRepository(db *gorm.DB, timeout time.Duration) adapter.FixedInstanceRepository {
	return &fixedInstanceRepository{conn: newConn(db, timeout)}
}

// MaterializedTemplateIDs returns every template id with an instance in the
// month, tombstoned rows included.
func (r *fixedInstanceRepository) MaterializedTemplateIDs(ctx context.Context, userID uuid.UUID, month valueobject.Month) (map[int64]struct{}, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var templateIDs []int64
	err := db.Unscoped().
		Model(&model.FixedInstanceModel{}).
		Where("user_id = ? AND month_date = ?", userID, month).
		Distinct().
		Pluck("template_id", &templateIDs).Error
	if err != nil {
		return nil, classifyStoreError("fixed_instance.materialized", err)
	}

	ids := make(map[int64]struct{}, len(templateIDs))
	for _, id := range templateIDs {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// InsertIfAbsent inserts the instance unless any row, tombstoned or live,
// already exists for its (template_id, month_date). The existence check runs
// inside the INSERT, so an ensure that read the materialized set before a
// concurrent delete cannot bring the deleted instance back. ON CONFLICT DO
// NOTHING against the partial unique index settles two simultaneous inserts.
// It returns false when nothing was written.
func (r *fixedInstanceRepository) InsertIfAbsent(ctx context.Context, instance *entity.FixedInstance) (bool, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	m := model.FixedInstanceFromEntity(instance)
	var id int64
	result := db.Raw(insertIfAbsentSQL(db.Dialector.Name()),
		m.TemplateID, m.UserID, m.MonthDate, m.Snapshot.Name, m.Snapshot.Amount, m.Snapshot.DueDay,
		m.IsPaid, m.CreatedAt, m.UpdatedAt,
		m.TemplateID, m.MonthDate,
	).Scan(&id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, classifyStoreError("fixed_instance.insert", result.Error)
	}
	if result.RowsAffected == 0 || id == 0 {
		return false, nil
	}

	instance.ID = id
	return true, nil
}

// insertIfAbsentSQL builds the conditional insert. PostgreSQL types the
// select-list placeholders as text unless they are cast.
func insertIfAbsentSQL(dialect string) string {
	arg := func(sqlType string) string {
		if dialect == "postgres" {
			return "CAST(? AS " + sqlType + ")"
		}
		return "?"
	}
	table := model.FixedInstanceModel{}.TableName()
	values := strings.Join([]string{
		arg("bigint"), arg("uuid"), arg("date"), arg("varchar"), arg("numeric"),
		arg("smallint"), arg("boolean"), arg("timestamptz"), arg("timestamptz"),
	}, ", ")

	return "INSERT INTO " + table +
		" (template_id, user_id, month_date, name_snapshot, amount_snapshot, due_day_snapshot, is_paid, created_at, updated_at)" +
		" SELECT " + values +
		" WHERE NOT EXISTS (SELECT 1 FROM " + table + " WHERE template_id = ? AND month_date = ?)" +
		" ON CONFLICT DO NOTHING RETURNING id"
}

// ListByMonth returns the live instances of the month, newest first.
func (r *fixedInstanceRepository) ListByMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) ([]*entity.FixedInstance, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var instanceModels []model.FixedInstanceModel
	err := db.Where("user_id = ? AND month_date = ?", userID, month).
		Order("id DESC").
		Find(&instanceModels).Error
	if err != nil {
		return nil, classifyStoreError("fixed_instance.list", err)
	}

	instances := make([]*entity.FixedInstance, len(instanceModels))
	for i := range instanceModels {
		instances[i] = instanceModels[i].ToEntity()
	}
	return instances, nil
}

// SetPaid flips is_paid on a live instance owned by the user and returns the
// row as stored after the update.
func (r *fixedInstanceRepository) SetPaid(ctx context.Context, userID uuid.UUID, id int64, paid bool) (*entity.FixedInstance, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var instanceModel model.FixedInstanceModel
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.FixedInstanceModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{
				"is_paid":    paid,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrFixedInstanceNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&instanceModel).Error
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrFixedInstanceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFixedInstanceNotFound
		}
		return nil, classifyStoreError("fixed_instance.set_paid", err)
	}
	return instanceModel.ToEntity(), nil
}

// SoftDelete tombstones a live instance owned by the user. The row stays in
// place so later ensure runs skip its template for that month.
func (r *fixedInstanceRepository) SoftDelete(ctx context.Context, userID uuid.UUID, id int64) error {
	db, cancel := r.query(ctx)
	defer cancel()

	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.FixedInstanceModel{})
	if result.Error != nil {
		return classifyStoreError("fixed_instance.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrFixedInstanceNotFound
	}
	return nil
}
