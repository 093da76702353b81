package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"logomarket/internal/domain"
)

type CatalogRepo interface {
	FetchAll(ctx context.Context) ([]domain.CatalogItem, error)
	FindById(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	IncrementClicks(ctx context.Context, logoID string) error
}

type catalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepo {
	return &catalogRepo{db: db}
}

const catalogColumns = `id, name, description, price, currency, available_formats, display_formats, formats, single_format_url, total_buy_clicks, created_at, updated_at`

func (r *catalogRepo) FetchAll(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+catalogColumns+` FROM logos ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *catalogRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+catalogColumns+` FROM logos WHERE id = $1`, id,
	)
	item, err := scanCatalogItem(row)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepo) IncrementClicks(ctx context.Context, logoID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE logos SET total_buy_clicks = total_buy_clicks + 1, updated_at = now() WHERE id = $1`,
		logoID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner) (*domain.CatalogItem, error) {
	var (
		item            domain.CatalogItem
		description     sql.NullString
		singleFormatURL sql.NullString
		available       []byte
		display         []byte
		formats         []byte
	)

	err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Price,
		&item.Currency,
		&available,
		&display,
		&formats,
		&singleFormatURL,
		&item.TotalBuyClicks,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.SingleFormatURL = singleFormatURL.String

	if len(available) > 0 {
		if err := json.Unmarshal(available, &item.AvailableFormats); err != nil {
			return nil, err
		}
	}
	if len(display) > 0 {
		if err := json.Unmarshal(display, &item.DisplayFormats); err != nil {
			return nil, err
		}
	}
	if len(formats) > 0 {
		if err := json.Unmarshal(formats, &item.Formats); err != nil {
			return nil, err
		}
	}
	return &item, nil
}
