package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/testutil"
)

type TransactionRepositorySuite struct {
	suite.Suite
	ctx    context.Context
	repo   adapter.TransactionRepository
	userID uuid.UUID
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewTransactionRepository(testutil.NewDB(s.T()), testutil.QueryTimeout)
	s.userID = uuid.New()
}

func (s *TransactionRepositorySuite) create(userID uuid.UUID, txType entity.TransactionType, amount, description string, day time.Time, categoryID *int64) *entity.Transaction {
	transaction := entity.NewTransaction(userID, txType, testutil.Money(s.T(), amount), categoryID, description, day)
	s.Require().NoError(s.repo.Create(s.ctx, transaction))
	s.Require().NotZero(transaction.ID)
	return transaction
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *TransactionRepositorySuite) TestListByMonth_ScopedToUserAndMonth() {
	s.create(s.userID, entity.TransactionTypeExpense, "10.00", "april", date(2024, time.April, 30), nil)
	may1 := s.create(s.userID, entity.TransactionTypeIncome, "500.00", "bonus", date(2024, time.May, 1), nil)
	may31 := s.create(s.userID, entity.TransactionTypeExpense, "20.50", "groceries", date(2024, time.May, 31), nil)
	s.create(uuid.New(), entity.TransactionTypeExpense, "99.00", "stranger", date(2024, time.May, 10), nil)
	deleted := s.create(s.userID, entity.TransactionTypeExpense, "5.00", "deleted", date(2024, time.May, 2), nil)
	s.Require().NoError(s.repo.SoftDelete(s.ctx, s.userID, deleted.ID))

	transactions, err := s.repo.ListByMonth(s.ctx, s.userID, valueobject.NewMonth(2024, time.May))
	s.Require().NoError(err)
	s.Require().Len(transactions, 2)
	s.Equal(may1.ID, transactions[0].ID)
	s.Equal(may31.ID, transactions[1].ID)
	s.Equal("2024-05-31", transactions[1].OccurredAt.Format("2006-01-02"))
	s.Equal("20.50", transactions[1].Amount.StringFixed(2))
	s.Equal(valueobject.NewMonth(2024, time.May), transactions[1].MonthDate)
}

func (s *TransactionRepositorySuite) TestList_CursorPagination() {
	for i := 0; i < 45; i++ {
		s.create(s.userID, entity.TransactionTypeExpense, "1.00", fmt.Sprintf("item %d", i), date(2024, time.May, 1+i%28), nil)
	}

	var (
		seen     = make(map[int64]bool)
		beforeID *int64
		pages    int
	)
	for {
		page, err := s.repo.List(s.ctx, adapter.TransactionFilter{UserID: s.userID, Limit: 20, BeforeID: beforeID})
		s.Require().NoError(err)
		pages++
		for i, t := range page {
			s.False(seen[t.ID], "id %d returned twice", t.ID)
			seen[t.ID] = true
			if i > 0 {
				s.Less(t.ID, page[i-1].ID)
			}
		}
		if len(page) < 20 {
			break
		}
		last := page[len(page)-1].ID
		beforeID = &last
	}

	s.Equal(3, pages)
	s.Len(seen, 45)
}

func (s *TransactionRepositorySuite) TestList_Filters() {
	groceries := int64(7)
	s.create(s.userID, entity.TransactionTypeExpense, "10.00", "Weekly GROCERIES", date(2024, time.May, 3), &groceries)
	s.create(s.userID, entity.TransactionTypeExpense, "12.00", "100% cotton shirt", date(2024, time.May, 10), nil)
	s.create(s.userID, entity.TransactionTypeIncome, "900.00", "salary", date(2024, time.May, 15), nil)
	s.create(s.userID, entity.TransactionTypeExpense, "3.00", "coffee_beans", date(2024, time.June, 1), nil)

	from, to := date(2024, time.May, 3), date(2024, time.May, 10)
	income := entity.TransactionTypeIncome

	tests := []struct {
		name   string
		filter adapter.TransactionFilter
		want   []string
	}{
		{name: "date range inclusive", filter: adapter.TransactionFilter{From: &from, To: &to}, want: []string{"100% cotton shirt", "Weekly GROCERIES"}},
		{name: "category", filter: adapter.TransactionFilter{CategoryID: &groceries}, want: []string{"Weekly GROCERIES"}},
		{name: "type", filter: adapter.TransactionFilter{Type: &income}, want: []string{"salary"}},
		{name: "case insensitive search", filter: adapter.TransactionFilter{Query: "groceries"}, want: []string{"Weekly GROCERIES"}},
		{name: "percent is literal", filter: adapter.TransactionFilter{Query: "0%"}, want: []string{"100% cotton shirt"}},
		{name: "underscore is literal", filter: adapter.TransactionFilter{Query: "e_b"}, want: []string{"coffee_beans"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			filter := tt.filter
			filter.UserID = s.userID
			filter.Limit = 50

			transactions, err := s.repo.List(s.ctx, filter)
			s.Require().NoError(err)

			var got []string
			for _, t := range transactions {
				got = append(got, t.Description)
			}
			s.Equal(tt.want, got)
		})
	}
}

func (s *TransactionRepositorySuite) TestSoftDelete_Ownership() {
	transaction := s.create(s.userID, entity.TransactionTypeExpense, "10.00", "lunch", date(2024, time.May, 3), nil)

	s.ErrorIs(s.repo.SoftDelete(s.ctx, uuid.New(), transaction.ID), domainerror.ErrTransactionNotFound)
	s.Require().NoError(s.repo.SoftDelete(s.ctx, s.userID, transaction.ID))
	s.ErrorIs(s.repo.SoftDelete(s.ctx, s.userID, transaction.ID), domainerror.ErrTransactionNotFound)

	page, err := s.repo.List(s.ctx, adapter.TransactionFilter{UserID: s.userID, Limit: 20})
	s.Require().NoError(err)
	s.Empty(page)
}
