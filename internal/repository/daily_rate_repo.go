package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for rate keys.
const DateLayout = "2006-01-02"

// DailyRate is the gold/silver per-unit rate stored for one calendar date.
type DailyRate struct {
	Date       time.Time
	GoldRate   decimal.Decimal
	SilverRate decimal.Decimal
	Source     string
	CreatedAt  time.Time
}

// DailyRateRepository defines DB operations for the append-only daily rate table.
type DailyRateRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*DailyRate, error)
	Insert(ctx context.Context, rate *DailyRate) error
	ListRecent(ctx context.Context, limit int) ([]DailyRate, error)
}

// PostgresDailyRateRepository is an implementation of DailyRateRepository using PostgreSQL.
type PostgresDailyRateRepository struct {
	db *sql.DB
}

// NewPostgresDailyRateRepository creates a new PostgresDailyRateRepository.
func NewPostgresDailyRateRepository(db *sql.DB) DailyRateRepository {
	return &PostgresDailyRateRepository{db: db}
}

// GetByDate returns the row for the given date, or (nil, nil) when the date is not cached yet.
func (r *PostgresDailyRateRepository) GetByDate(ctx context.Context, date time.Time) (*DailyRate, error) {
	query := `SELECT date, gold_rate, silver_rate, source, created_at
              FROM daily_rates
              WHERE date = $1::date`

	row := r.db.QueryRowContext(ctx, query, date.Format(DateLayout))
	return scanDailyRate(row)
}

// Insert stores a new row and fills in its creation time. A row already present for
// the date is never overwritten: the insert reports ErrDuplicate instead.
func (r *PostgresDailyRateRepository) Insert(ctx context.Context, rate *DailyRate) error {
	query := `INSERT INTO daily_rates (date, gold_rate, silver_rate, source)
              VALUES ($1::date, $2::numeric, $3::numeric, $4)
              ON CONFLICT (date) DO NOTHING
              RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		rate.Date.Format(DateLayout), rate.GoldRate.StringFixed(2), rate.SilverRate.StringFixed(2), rate.Source,
	).Scan(&rate.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("daily rate for %s: %w", rate.Date.Format(DateLayout), ErrDuplicate)
		}
		return fmt.Errorf("failed to insert daily rate: %w", mapPgError(err))
	}
	return nil
}

// ListRecent returns the most recent rows, newest first.
func (r *PostgresDailyRateRepository) ListRecent(ctx context.Context, limit int) ([]DailyRate, error) {
	query := `SELECT date, gold_rate, silver_rate, source, created_at
              FROM daily_rates
              ORDER BY date DESC
              LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var rates []DailyRate
	for rows.Next() {
		var dr DailyRate
		if err := rows.Scan(&dr.Date, &dr.GoldRate, &dr.SilverRate, &dr.Source, &dr.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, dr)
	}
	return rates, rows.Err()
}

// scanDailyRate maps a single row into a DailyRate, returning (nil, nil) for sql.ErrNoRows.
func scanDailyRate(row *sql.Row) (*DailyRate, error) {
	var dr DailyRate
	err := row.Scan(&dr.Date, &dr.GoldRate, &dr.SilverRate, &dr.Source, &dr.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dr, nil
}
