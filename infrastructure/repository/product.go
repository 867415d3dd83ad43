package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

const (
	productsTable  = "products"
	datetimeLayout = "2006-01-02 15:04:05"
)

type ProductRepository interface {
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id string) error
	GetByID(id string) (*domain.Product, error)
	List() ([]*domain.Product, error)
}

type productRepository struct {
	conn *sqlite.Connection
}

func NewProductRepository(conn *sqlite.Connection) ProductRepository {
	return &productRepository{conn: conn}
}

func (r *productRepository) Create(product *domain.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query, args, err := squirrel.
		Insert(productsTable).
		Columns("id", "name", "price", "stock", "min_stock", "type", "barcode", "created_at", "updated_at").
		Values(
			product.ID,
			product.Name,
			product.Price,
			product.Stock,
			product.MinStock,
			string(product.Type),
			product.Barcode,
			now.Format(datetimeLayout),
			now.Format(datetimeLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return nil
}

func (r *productRepository) Update(product *domain.Product) error {
	product.UpdatedAt = time.Now()

	query, args, err := squirrel.
		Update(productsTable).
		Set("name", product.Name).
		Set("price", product.Price).
		Set("stock", product.Stock).
		Set("min_stock", product.MinStock).
		Set("type", string(product.Type)).
		Set("barcode", product.Barcode).
		Set("updated_at", product.UpdatedAt.Format(datetimeLayout)).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	return nil
}

func (r *productRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(productsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao excluir produto: %w", err)
	}

	return nil
}

func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "name", "price", "stock", "min_stock", "type", "barcode", "created_at", "updated_at").
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) List() ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "name", "price", "stock", "min_stock", "type", "barcode", "created_at", "updated_at").
		From(productsTable).
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var productType, createdAt, updatedAt string

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.MinStock,
		&productType,
		&product.Barcode,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Type = domain.ProductType(productType)
	product.CreatedAt = parseStoredTime(createdAt)
	product.UpdatedAt = parseStoredTime(updatedAt)

	return product, nil
}
