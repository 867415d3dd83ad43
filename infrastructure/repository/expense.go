package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

const expensesTable = "expenses"

type ExpenseRepository interface {
	Create(expense *domain.Expense) error
	Update(expense *domain.Expense) error
	Delete(id string) error
	GetByID(id string) (*domain.Expense, error)
	List() ([]*domain.Expense, error)
	ListRecurring() ([]*domain.Expense, error)
}

type expenseRepository struct {
	conn *sqlite.Connection
}

func NewExpenseRepository(conn *sqlite.Connection) ExpenseRepository {
	return &expenseRepository{conn: conn}
}

func (r *expenseRepository) Create(expense *domain.Expense) error {
	query, args, err := squirrel.
		Insert(expensesTable).
		Columns("id", "name", "amount", "due_date", "paid", "recurring", "customer_id", "paid_at", "created_at", "updated_at").
		Values(
			expense.ID,
			expense.Name,
			expense.Amount,
			expense.DueDate,
			expense.Paid,
			expense.Recurring,
			expense.CustomerID,
			formatTimePtr(expense.PaidAt),
			expense.CreatedAt.Format(datetimeLayout),
			expense.UpdatedAt.Format(datetimeLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao inserir despesa: %w", err)
	}

	return nil
}

func (r *expenseRepository) Update(expense *domain.Expense) error {
	query, args, err := squirrel.
		Update(expensesTable).
		Set("name", expense.Name).
		Set("amount", expense.Amount).
		Set("due_date", expense.DueDate).
		Set("paid", expense.Paid).
		Set("recurring", expense.Recurring).
		Set("customer_id", expense.CustomerID).
		Set("paid_at", formatTimePtr(expense.PaidAt)).
		Set("updated_at", time.Now().Format(datetimeLayout)).
		Where(squirrel.Eq{"id": expense.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar despesa: %w", err)
	}

	return nil
}

func (r *expenseRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao excluir despesa: %w", err)
	}

	return nil
}

func (r *expenseRepository) GetByID(id string) (*domain.Expense, error) {
	query, args, err := expenseSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	expense, err := scanExpense(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
	}

	return expense, nil
}

func (r *expenseRepository) List() ([]*domain.Expense, error) {
	query, args, err := expenseSelect().
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryExpenses(query, args...)
}

func (r *expenseRepository) ListRecurring() ([]*domain.Expense, error) {
	query, args, err := expenseSelect().
		Where(squirrel.Eq{"recurring": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryExpenses(query, args...)
}

func (r *expenseRepository) queryExpenses(query string, args ...interface{}) ([]*domain.Expense, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesas: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}

func expenseSelect() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "amount", "due_date", "paid", "recurring", "customer_id", "paid_at", "created_at", "updated_at").
		From(expensesTable)
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	expense := &domain.Expense{}
	var paidAt *string
	var createdAt, updatedAt string

	err := row.Scan(
		&expense.ID,
		&expense.Name,
		&expense.Amount,
		&expense.DueDate,
		&expense.Paid,
		&expense.Recurring,
		&expense.CustomerID,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.PaidAt = parseStoredTimePtr(paidAt)
	expense.CreatedAt = parseStoredTime(createdAt)
	expense.UpdatedAt = parseStoredTime(updatedAt)

	return expense, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(datetimeLayout)
	return &s
}
