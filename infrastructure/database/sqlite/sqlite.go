package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/vendafacil/vendafacil-api/internal/config"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sqlx.Tx) error) error
}

type Connection struct {
	*sqlx.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sqlx.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}

	// O driver SQLite serializa escritas; uma única conexão evita SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn dentro de uma transação
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := c.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}
