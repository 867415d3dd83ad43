package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

const customersTable = "customers"

type CustomerRepository interface {
	Create(customer *domain.Customer) error
	Update(customer *domain.Customer) error
	Delete(id string) error
	GetByID(id string) (*domain.Customer, error)
	List() ([]*domain.Customer, error)
}

type customerRepository struct {
	conn *sqlite.Connection
}

func NewCustomerRepository(conn *sqlite.Connection) CustomerRepository {
	return &customerRepository{conn: conn}
}

func (r *customerRepository) Create(customer *domain.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query, args, err := squirrel.
		Insert(customersTable).
		Columns("id", "name", "phone", "email", "whatsapp", "created_at", "updated_at").
		Values(
			customer.ID,
			customer.Name,
			customer.Phone,
			customer.Email,
			customer.WhatsApp,
			now.Format(datetimeLayout),
			now.Format(datetimeLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao inserir cliente: %w", err)
	}

	return nil
}

func (r *customerRepository) Update(customer *domain.Customer) error {
	customer.UpdatedAt = time.Now()

	query, args, err := squirrel.
		Update(customersTable).
		Set("name", customer.Name).
		Set("phone", customer.Phone).
		Set("email", customer.Email).
		Set("whatsapp", customer.WhatsApp).
		Set("updated_at", customer.UpdatedAt.Format(datetimeLayout)).
		Where(squirrel.Eq{"id": customer.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	return nil
}

func (r *customerRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(customersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao excluir cliente: %w", err)
	}

	return nil
}

func (r *customerRepository) GetByID(id string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select("id", "name", "phone", "email", "whatsapp", "created_at", "updated_at").
		From(customersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer, err := scanCustomer(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) List() ([]*domain.Customer, error) {
	query, args, err := squirrel.
		Select("id", "name", "phone", "email", "whatsapp", "created_at", "updated_at").
		From(customersTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear clientes: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var createdAt, updatedAt string

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
		&customer.WhatsApp,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.CreatedAt = parseStoredTime(createdAt)
	customer.UpdatedAt = parseStoredTime(updatedAt)

	return customer, nil
}
