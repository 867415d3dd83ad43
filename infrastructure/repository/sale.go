package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

type SaleRepository interface {
	// CreateWithItems grava a venda, seus itens e os ajustes de estoque em
	// uma única transação. stockDeltas mapeia product_id -> unidades a
	// descontar (serviços não entram no mapa).
	CreateWithItems(ctx context.Context, sale *domain.Sale, stockDeltas map[string]int) error
	// DeleteWithStockReversal remove a venda devolvendo o estoque descontado
	DeleteWithStockReversal(ctx context.Context, id string, stockDeltas map[string]int) error
	GetByID(id string) (*domain.Sale, error)
	List(limit uint64) ([]*domain.Sale, error)
	ItemsBySaleID(saleID string) ([]domain.SaleItem, error)
}

type saleRepository struct {
	conn *sqlite.Connection
}

func NewSaleRepository(conn *sqlite.Connection) SaleRepository {
	return &saleRepository{conn: conn}
}

func (r *saleRepository) CreateWithItems(ctx context.Context, sale *domain.Sale, stockDeltas map[string]int) error {
	return r.conn.RunInTransaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert(salesTable).
			Columns("id", "customer_id", "total", "payment_method", "observation", "created_at").
			Values(
				sale.ID,
				sale.CustomerID,
				sale.Total,
				sale.PaymentMethod,
				sale.Observation,
				sale.CreatedAt.Format(datetimeLayout),
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("erro ao inserir venda: %w", err)
		}

		for _, item := range sale.Items {
			query, args, err := squirrel.
				Insert(saleItemsTable).
				Columns("id", "sale_id", "product_id", "quantity", "unit_price", "total").
				Values(item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Total).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.Exec(query, args...); err != nil {
				return fmt.Errorf("erro ao inserir item da venda: %w", err)
			}
		}

		return applyStockDeltas(tx, stockDeltas, -1)
	})
}

func (r *saleRepository) DeleteWithStockReversal(ctx context.Context, id string, stockDeltas map[string]int) error {
	return r.conn.RunInTransaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Delete(saleItemsTable).
			Where(squirrel.Eq{"sale_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("erro ao excluir itens da venda: %w", err)
		}

		query, args, err = squirrel.
			Delete(salesTable).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("erro ao excluir venda: %w", err)
		}

		return applyStockDeltas(tx, stockDeltas, +1)
	})
}

// applyStockDeltas ajusta o estoque dos produtos. direction -1 desconta
// (venda criada), +1 devolve (venda excluída).
func applyStockDeltas(tx *sqlx.Tx, stockDeltas map[string]int, direction int) error {
	for productID, quantity := range stockDeltas {
		_, err := tx.Exec(
			"UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			direction*quantity,
			productID,
		)
		if err != nil {
			return fmt.Errorf("erro ao ajustar estoque do produto %s: %w", productID, err)
		}
	}
	return nil
}

func (r *saleRepository) GetByID(id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select("id", "customer_id", "total", "payment_method", "observation", "created_at").
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale, err := scanSale(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear venda: %w", err)
	}

	items, err := r.ItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

func (r *saleRepository) List(limit uint64) ([]*domain.Sale, error) {
	builder := squirrel.
		Select("id", "customer_id", "total", "payment_method", "observation", "created_at").
		From(salesTable).
		OrderBy("created_at DESC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) ItemsBySaleID(saleID string) ([]domain.SaleItem, error) {
	query, args, err := squirrel.
		Select("id", "sale_id", "product_id", "quantity", "unit_price", "total").
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	items := make([]domain.SaleItem, 0)
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("erro ao escanear itens da venda: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var createdAt string

	err := row.Scan(
		&sale.ID,
		&sale.CustomerID,
		&sale.Total,
		&sale.PaymentMethod,
		&sale.Observation,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sale.CreatedAt = parseStoredTime(createdAt)

	return sale, nil
}
