package persistence

import (
	"context"
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

type FixedRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	templates adapter.FixedTemplateRepository
	instances adapter.FixedInstanceRepository
	userID    uuid.UUID
	month     valueobject.Month
}

func TestFixedRepositorySuite(t *testing.T) {
	suite.Run(t, new(FixedRepositorySuite))
}

func (s *FixedRepositorySuite) SetupTest() {
	gdb := testutil.NewDB(s.T())
	s.ctx = context.Background()
	s.templates = NewFixedTemplateRepository(gdb, testutil.QueryTimeout)
	s.instances = NewFixedInstanceRepository(gdb, testutil.QueryTimeout)
	s.userID = uuid.New()
	s.month = valueobject.NewMonth(2024, time.May)
}

func (s *FixedRepositorySuite) createTemplate(userID uuid.UUID, name, amount string) *entity.FixedTemplate {
	dueDay := 5
	template := entity.NewFixedTemplate(userID, name, testutil.Money(s.T(), amount), nil, &dueDay)
	s.Require().NoError(s.templates.Create(s.ctx, template))
	s.Require().NotZero(template.ID)
	return template
}

func (s *FixedRepositorySuite) materialize(template *entity.FixedTemplate) *entity.FixedInstance {
	instance := entity.NewFixedInstance(template, s.month)
	inserted, err := s.instances.InsertIfAbsent(s.ctx, instance)
	s.Require().NoError(err)
	s.Require().True(inserted)
	return instance
}

func (s *FixedRepositorySuite) TestListActive_OrderedByNameAndActiveOnly() {
	s.createTemplate(s.userID, "Rent", "1200.00")
	internet := s.createTemplate(s.userID, "Internet", "60.00")
	gym := s.createTemplate(s.userID, "Gym", "30.00")
	s.createTemplate(uuid.New(), "Other user", "10.00")

	s.Require().NoError(s.templates.Deactivate(s.ctx, s.userID, gym.ID))

	templates, err := s.templates.ListActive(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(templates, 2)
	s.Equal(internet.ID, templates[0].ID)
	s.Equal("Rent", templates[1].Name)
	s.Equal("1200.00", templates[1].Amount.StringFixed(2))
}

func (s *FixedRepositorySuite) TestTemplateOwnership() {
	template := s.createTemplate(s.userID, "Rent", "1200.00")
	stranger := uuid.New()

	_, err := s.templates.FindOwnedByID(s.ctx, stranger, template.ID)
	s.ErrorIs(err, domainerror.ErrTemplateNotFound)

	s.ErrorIs(s.templates.Deactivate(s.ctx, stranger, template.ID), domainerror.ErrTemplateNotFound)

	template.UserID = stranger
	s.ErrorIs(s.templates.Update(s.ctx, template), domainerror.ErrTemplateNotFound)
}

func (s *FixedRepositorySuite) TestInsertIfAbsent_SecondInsertReportsConflict() {
	template := s.createTemplate(s.userID, "Rent", "1200.00")
	first := s.materialize(template)
	s.NotZero(first.ID)

	inserted, err := s.instances.InsertIfAbsent(s.ctx, entity.NewFixedInstance(template, s.month))
	s.Require().NoError(err)
	s.False(inserted)

	instances, err := s.instances.ListByMonth(s.ctx, s.userID, s.month)
	s.Require().NoError(err)
	s.Len(instances, 1)
}

func (s *FixedRepositorySuite) TestInsertIfAbsent_OtherMonthIsIndependent() {
	template := s.createTemplate(s.userID, "Rent", "1200.00")
	s.materialize(template)

	inserted, err := s.instances.InsertIfAbsent(s.ctx, entity.NewFixedInstance(template, s.month.Next()))
	s.Require().NoError(err)
	s.True(inserted)
}

func (s *FixedRepositorySuite) TestInsertIfAbsent_DeletedInstanceStaysDeleted() {
	template := s.createTemplate(s.userID, "Rent", "1200.00")
	// Both instances are built before the delete, as a concurrent ensure
	// would have done after reading the materialized set.
	first := entity.NewFixedInstance(template, s.month)
	stale := entity.NewFixedInstance(template, s.month)

	inserted, err := s.instances.InsertIfAbsent(s.ctx, first)
	s.Require().NoError(err)
	s.Require().True(inserted)
	s.Require().NoError(s.instances.SoftDelete(s.ctx, s.userID, first.ID))

	inserted, err = s.instances.InsertIfAbsent(s.ctx, stale)
	s.Require().NoError(err)
	s.False(inserted)
	s.Zero(stale.ID)

	instances, err := s.instances.ListByMonth(s.ctx, s.userID, s.month)
	s.Require().NoError(err)
	s.Empty(instances)
}

func (s *FixedRepositorySuite) TestMaterializedTemplateIDs_IncludesDeleted() {
	rent := s.createTemplate(s.userID, "Rent", "1200.00")
	internet := s.createTemplate(s.userID, "Internet", "60.00")
	rentInstance := s.materialize(rent)
	s.materialize(internet)

	s.Require().NoError(s.instances.SoftDelete(s.ctx, s.userID, rentInstance.ID))

	ids, err := s.instances.MaterializedTemplateIDs(s.ctx, s.userID, s.month)
	s.Require().NoError(err)
	s.Contains(ids, rent.ID)
	s.Contains(ids, internet.ID)

	other, err := s.instances.MaterializedTemplateIDs(s.ctx, uuid.New(), s.month)
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *FixedRepositorySuite) TestListByMonth_LiveRowsNewestFirst() {
	rent := s.materialize(s.createTemplate(s.userID, "Rent", "1200.00"))
	internet := s.materialize(s.createTemplate(s.userID, "Internet", "60.00"))
	gym := s.materialize(s.createTemplate(s.userID, "Gym", "30.00"))

	s.Require().NoError(s.instances.SoftDelete(s.ctx, s.userID, internet.ID))

	instances, err := s.instances.ListByMonth(s.ctx, s.userID, s.month)
	s.Require().NoError(err)
	s.Require().Len(instances, 2)
	s.Equal(gym.ID, instances[0].ID)
	s.Equal(rent.ID, instances[1].ID)
	s.Equal(s.month, instances[1].MonthDate)
	s.Equal("Rent", instances[1].Snapshot.Name)
	s.Equal("1200.00", instances[1].Snapshot.Amount.StringFixed(2))
	s.Require().NotNil(instances[1].Snapshot.DueDay)
	s.Equal(5, *instances[1].Snapshot.DueDay)
}

func (s *FixedRepositorySuite) TestSetPaid() {
	instance := s.materialize(s.createTemplate(s.userID, "Rent", "1200.00"))

	paid, err := s.instances.SetPaid(s.ctx, s.userID, instance.ID, true)
	s.Require().NoError(err)
	s.True(paid.IsPaid)
	s.Equal("1200.00", paid.Snapshot.Amount.StringFixed(2))

	paidAgain, err := s.instances.SetPaid(s.ctx, s.userID, instance.ID, true)
	s.Require().NoError(err)
	s.True(paidAgain.IsPaid)

	unpaid, err := s.instances.SetPaid(s.ctx, s.userID, instance.ID, false)
	s.Require().NoError(err)
	s.False(unpaid.IsPaid)
}

func (s *FixedRepositorySuite) TestSetPaid_NotFoundOrNotOwned() {
	instance := s.materialize(s.createTemplate(s.userID, "Rent", "1200.00"))

	_, err := s.instances.SetPaid(s.ctx, uuid.New(), instance.ID, true)
	s.ErrorIs(err, domainerror.ErrFixedInstanceNotFound)

	_, err = s.instances.SetPaid(s.ctx, s.userID, instance.ID+100, true)
	s.ErrorIs(err, domainerror.ErrFixedInstanceNotFound)

	s.Require().NoError(s.instances.SoftDelete(s.ctx, s.userID, instance.ID))
	_, err = s.instances.SetPaid(s.ctx, s.userID, instance.ID, true)
	s.ErrorIs(err, domainerror.ErrFixedInstanceNotFound)

	// The foreign attempt left the row untouched.
	ids, err := s.instances.MaterializedTemplateIDs(s.ctx, s.userID, s.month)
	s.Require().NoError(err)
	s.Len(ids, 1)
}

func (s *FixedRepositorySuite) TestSoftDelete_Twice() {
	instance := s.materialize(s.createTemplate(s.userID, "Rent", "1200.00"))

	s.ErrorIs(s.instances.SoftDelete(s.ctx, uuid.New(), instance.ID), domainerror.ErrFixedInstanceNotFound)
	s.Require().NoError(s.instances.SoftDelete(s.ctx, s.userID, instance.ID))
	s.ErrorIs(s.instances.SoftDelete(s.ctx, s.userID, instance.ID), domainerror.ErrFixedInstanceNotFound)
}
