package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/domain"
)

const settingsTable = "store_settings"

// SettingsRepository mantém a linha única de configurações da loja.
type SettingsRepository interface {
	Get() (*domain.StoreSettings, error)
	Save(settings *domain.StoreSettings) error
}

type settingsRepository struct {
	conn *sqlite.Connection
}

func NewSettingsRepository(conn *sqlite.Connection) SettingsRepository {
	return &settingsRepository{conn: conn}
}

func (r *settingsRepository) Get() (*domain.StoreSettings, error) {
	query, args, err := squirrel.
		Select("id", "store_name", "owner_name", "pix_key", "premium", "premium_plan", "premium_expires_at", "created_at", "updated_at").
		From(settingsTable).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	settings := &domain.StoreSettings{}
	var premiumExpiresAt *string
	var createdAt, updatedAt string

	err = r.conn.QueryRow(query, args...).Scan(
		&settings.ID,
		&settings.StoreName,
		&settings.OwnerName,
		&settings.PixKey,
		&settings.Premium,
		&settings.PremiumPlan,
		&premiumExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear configurações: %w", err)
	}

	settings.PremiumExpiresAt = parseStoredTimePtr(premiumExpiresAt)
	settings.CreatedAt = parseStoredTime(createdAt)
	settings.UpdatedAt = parseStoredTime(updatedAt)

	return settings, nil
}

func (r *settingsRepository) Save(settings *domain.StoreSettings) error {
	current, err := r.Get()
	if err != nil {
		return err
	}

	if current == nil {
		query, args, err := squirrel.
			Insert(settingsTable).
			Columns("id", "store_name", "owner_name", "pix_key", "premium", "premium_plan", "premium_expires_at", "created_at", "updated_at").
			Values(
				settings.ID,
				settings.StoreName,
				settings.OwnerName,
				settings.PixKey,
				settings.Premium,
				settings.PremiumPlan,
				formatTimePtr(settings.PremiumExpiresAt),
				settings.CreatedAt.Format(datetimeLayout),
				settings.UpdatedAt.Format(datetimeLayout),
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := r.conn.Exec(query, args...); err != nil {
			return fmt.Errorf("erro ao inserir configurações: %w", err)
		}

		return nil
	}

	query, args, err := squirrel.
		Update(settingsTable).
		Set("store_name", settings.StoreName).
		Set("owner_name", settings.OwnerName).
		Set("pix_key", settings.PixKey).
		Set("premium", settings.Premium).
		Set("premium_plan", settings.PremiumPlan).
		Set("premium_expires_at", formatTimePtr(settings.PremiumExpiresAt)).
		Set("updated_at", time.Now().Format(datetimeLayout)).
		Where(squirrel.Eq{"id": current.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar configurações: %w", err)
	}

	return nil
}
