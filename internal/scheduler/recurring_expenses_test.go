package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository/mocks"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func newRollService(repo *mocks.MockExpenseRepository, now time.Time) *RecurringExpensesService {
	return &RecurringExpensesService{
		config:      config.RecurringExpenses{Enabled: true, CronSchedule: "0 5 1 * *"},
		expenseRepo: repo,
		now:         func() time.Time { return now },
	}
}

func TestRecurringExpensesService_RollExpenses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)

	// Data de referência: 1 de maio de 2024
	now := time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC)
	service := newRollService(mockExpenseRepo, now)

	template := &domain.Expense{
		ID:        "EXP001",
		Name:      "Aluguel",
		Amount:    1500,
		DueDate:   stringPtr("2024-04-10"),
		Recurring: true,
		CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	mockExpenseRepo.EXPECT().ListRecurring().Return([]*domain.Expense{template}, nil)
	mockExpenseRepo.EXPECT().List().Return([]*domain.Expense{template}, nil)

	var created *domain.Expense
	mockExpenseRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(e *domain.Expense) error {
			created = e
			return nil
		})

	service.RollExpenses()

	assert.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, template.ID, created.ID)
	assert.Equal(t, "Aluguel", created.Name)
	assert.Equal(t, 1500.0, created.Amount)
	assert.False(t, created.Paid)
	assert.False(t, created.Recurring)
	assert.Equal(t, "2024-05-10", *created.DueDate)
}

func TestRecurringExpensesService_RollExpenses_ClampsDueDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)

	// Fevereiro de 2025 tem 28 dias: vencimento no dia 31 recua para o dia 28
	now := time.Date(2025, 2, 1, 5, 0, 0, 0, time.UTC)
	service := newRollService(mockExpenseRepo, now)

	template := &domain.Expense{
		ID:        "EXP002",
		Name:      "Internet",
		Amount:    120,
		DueDate:   stringPtr("2025-01-31"),
		Recurring: true,
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	mockExpenseRepo.EXPECT().ListRecurring().Return([]*domain.Expense{template}, nil)
	mockExpenseRepo.EXPECT().List().Return([]*domain.Expense{template}, nil)

	var created *domain.Expense
	mockExpenseRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(e *domain.Expense) error {
			created = e
			return nil
		})

	service.RollExpenses()

	assert.NotNil(t, created)
	assert.Equal(t, "2025-02-28", *created.DueDate)
}

func TestRecurringExpensesService_RollExpenses_SkipsExistingCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)

	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	service := newRollService(mockExpenseRepo, now)

	template := &domain.Expense{
		ID:        "EXP001",
		Name:      "Aluguel",
		Amount:    1500,
		DueDate:   stringPtr("2024-04-10"),
		Recurring: true,
		CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	copyOfMonth := &domain.Expense{
		ID:        "EXP009",
		Name:      "Aluguel",
		Amount:    1500,
		DueDate:   stringPtr("2024-05-10"),
		CreatedAt: time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC),
	}

	mockExpenseRepo.EXPECT().ListRecurring().Return([]*domain.Expense{template}, nil)
	mockExpenseRepo.EXPECT().List().Return([]*domain.Expense{template, copyOfMonth}, nil)
	// Nenhuma chamada a Create é esperada

	service.RollExpenses()
}

func TestRecurringExpensesService_RollExpenses_NoTemplates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)

	service := newRollService(mockExpenseRepo, time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC))

	mockExpenseRepo.EXPECT().ListRecurring().Return(nil, nil)

	service.RollExpenses()
}
