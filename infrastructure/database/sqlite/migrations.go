package sqlite

import (
	"context"
	"fmt"
)

// Migrate cria o schema local do ponto de venda. Mantém os nomes de tabela e
// coluna do banco original do aplicativo (venda.db).
func Migrate(ctx context.Context, conn *Connection) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			min_stock INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT 'product',
			barcode TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			whatsapp INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id TEXT PRIMARY KEY,
			customer_id TEXT REFERENCES customers(id),
			total REAL NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL,
			observation TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id TEXT PRIMARY KEY,
			sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			total REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			amount REAL NOT NULL DEFAULT 0,
			due_date TEXT,
			paid INTEGER NOT NULL DEFAULT 0,
			recurring INTEGER NOT NULL DEFAULT 0,
			customer_id TEXT REFERENCES customers(id),
			paid_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS store_settings (
			id TEXT PRIMARY KEY,
			store_name TEXT NOT NULL DEFAULT '',
			owner_name TEXT NOT NULL DEFAULT '',
			pix_key TEXT,
			premium INTEGER NOT NULL DEFAULT 0,
			premium_plan TEXT,
			premium_expires_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items(sale_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items(product_id)`,
	}

	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}

	return nil
}
