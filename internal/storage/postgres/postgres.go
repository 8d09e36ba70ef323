package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS reservations (
		position    INTEGER     NOT NULL,
		id          BIGINT      PRIMARY KEY,
		description TEXT        NOT NULL,
		category    TEXT        NULL,
		date_from   DATE        NULL,
		date_to     DATE        NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)
`

type Config struct {
	L   *logger.Logger
	DSN string
}

// Store keeps the reservation list in a single table and rewrites it inside
// one transaction on every Save.
type Store struct {
	l  *logger.Logger
	db *sqlx.DB
}

type row struct {
	Position    int            `db:"position"`
	ID          int64          `db:"id"`
	Description string         `db:"description"`
	Category    sql.NullString `db:"category"`
	DateFrom    sql.NullTime   `db:"date_from"`
	DateTo      sql.NullTime   `db:"date_to"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func New(ctx context.Context, conf Config) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(5)                  //nolint:gomnd
	db.SetMaxIdleConns(5)                  //nolint:gomnd
	db.SetConnMaxLifetime(5 * time.Minute) //nolint:gomnd

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("create reservations table: %w", err)
	}

	conf.L.LogInfo("Postgres reservation store is ready")

	return &Store{l: conf.L, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) ([]*reservation.Record, error) {
	var rows []row

	query := `
		SELECT position, id, description, category, date_from, date_to, created_at, updated_at
		FROM reservations
		ORDER BY position ASC
	`

	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select reservations: %w", err)
	}

	records := make([]*reservation.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}

	return records, nil
}

func (s *Store) Save(ctx context.Context, records []*reservation.Record) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.l.LogErrorf("Could not rollback reservations transaction: %v, original error: %v", rbErr, err)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM reservations`); err != nil {
		return fmt.Errorf("clear reservations: %w", err)
	}

	query := `
		INSERT INTO reservations (
			position, id, description, category, date_from, date_to, created_at, updated_at
		) VALUES (
			:position, :id, :description, :category, :date_from, :date_to, :created_at, :updated_at
		)
	`

	for i, r := range records {
		if _, err = tx.NamedExecContext(ctx, query, toRow(i, r)); err != nil {
			return fmt.Errorf("insert reservation %d: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func toRow(position int, r *reservation.Record) row {
	out := row{
		Position:    position,
		ID:          r.ID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Category != nil {
		out.Category = sql.NullString{String: string(*r.Category), Valid: true}
	}

	if r.Dates != nil {
		out.DateFrom = sql.NullTime{Time: r.Dates.From, Valid: true}
		out.DateTo = sql.NullTime{Time: r.Dates.To, Valid: true}
	}

	return out
}

func (r row) record() *reservation.Record {
	//nolint:exhaustruct
	out := &reservation.Record{
		ID:          r.ID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}

	if r.Category.Valid {
		category := slots.Category(r.Category.String)
		out.Category = &category
	}

	if r.DateFrom.Valid && r.DateTo.Valid {
		from, to := r.DateFrom.Time, r.DateTo.Time
		out.Dates = &slots.DateRange{
			From: slots.Date(from.Year(), from.Month(), from.Day()),
			To:   slots.Date(to.Year(), to.Month(), to.Day()),
		}
	}

	return out
}
