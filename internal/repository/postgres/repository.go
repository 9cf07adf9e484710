// sentiric-numbering-service/internal/repository/postgres/repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/sentiric/sentiric-numbering-service/internal/service/numbering"
)

const (
	undefinedTable = "42P01"
	checkViolation = "23514"
)

type Repository struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

func NewRepository(db *pgxpool.Pool, log zerolog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

func (r *Repository) handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return numbering.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedTable:
			r.log.Warn().Str("table", pgErr.TableName).Msg("Kritik tablo bulunamadı")
			return numbering.ErrTableMissing
		case checkViolation:
			return fmt.Errorf("%w: %s", numbering.ErrInvalidRegion, pgErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", numbering.ErrDatabase, err)
}

func (r *Repository) ListPlans(ctx context.Context) ([]numbering.Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT region, document, updated_at FROM numbering_plans ORDER BY region ASC`)
	if err != nil {
		return nil, r.handleError(err)
	}
	defer rows.Close()

	var plans []numbering.Plan
	for rows.Next() {
		var p numbering.Plan
		if err := rows.Scan(&p.Region, &p.Document, &p.UpdatedAt); err != nil {
			return nil, r.handleError(err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handleError(err)
	}
	return plans, nil
}

func (r *Repository) FindPlan(ctx context.Context, region string) (*numbering.Plan, error) {
	var p numbering.Plan
	err := r.db.QueryRow(ctx,
		`SELECT region, document, updated_at FROM numbering_plans WHERE region = $1`, region).
		Scan(&p.Region, &p.Document, &p.UpdatedAt)
	if err != nil {
		return nil, r.handleError(err)
	}
	return &p, nil
}

func (r *Repository) SavePlan(ctx context.Context, plan numbering.Plan) error {
	query := `
		INSERT INTO numbering_plans (region, document, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (region) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, plan.Region, plan.Document, plan.UpdatedAt)
	return r.handleError(err)
}

func (r *Repository) DeletePlan(ctx context.Context, region string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM numbering_plans WHERE region = $1", region)
	if err != nil {
		return 0, r.handleError(err)
	}
	return cmdTag.RowsAffected(), nil
}
