package persistence

import (
	"context"
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

// likeEscaper escapes LIKE wildcards in user search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	conn
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB, timeout time.Duration) adapter.TransactionRepository {
	return &transactionRepository{conn: newConn(db, timeout)}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	db, cancel := r.query(ctx)
	defer cancel()

	transactionModel := model.TransactionFromEntity(transaction)
	if err := db.Create(transactionModel).Error; err != nil {
		return classifyStoreError("transaction.create", err)
	}
	transaction.ID = transactionModel.ID
	return nil
}

// List returns one page of live transactions ordered by id descending.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	query := db.Where("user_id = ?", filter.UserID)
	if filter.BeforeID != nil {
		query = query.Where("id < ?", *filter.BeforeID)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		query = query.Where(`LOWER(description) LIKE ? ESCAPE '\'`, pattern)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("id DESC").Limit(filter.Limit).Find(&transactionModels).Error; err != nil {
		return nil, classifyStoreError("transaction.list", err)
	}
	return toTransactions(transactionModels), nil
}

// ListByMonth returns every live transaction of the user in the month.
func (r *transactionRepository) ListByMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) ([]*entity.Transaction, error) {
	db, cancel := r.query(ctx)
	defer cancel()

	var transactionModels []model.TransactionModel
	err := db.Where("user_id = ? AND month_date = ?", userID, month).
		Order("occurred_at ASC, id ASC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, classifyStoreError("transaction.list_by_month", err)
	}
	return toTransactions(transactionModels), nil
}

// SoftDelete tombstones a live transaction owned by the user.
func (r *transactionRepository) SoftDelete(ctx context.Context, userID uuid.UUID, id int64) error {
	db, cancel := r.query(ctx)
	defer cancel()

	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return classifyStoreError("transaction.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func toTransactions(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
