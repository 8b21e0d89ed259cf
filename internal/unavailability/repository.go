package unavailability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads maintenance and roster blocks from public.unavailability_periods.
type Repository interface {
	Source
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) PeriodsBetween(ctx context.Context, from, to time.Time) ([]Period, error) {
	// Half-open intersection: start < to AND end > from.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "resource_id", "resource_kind", "start_time", "end_time", "reason", "pattern",
	).
		From("public.unavailability_periods").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list unavailability query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list unavailability failed: %w", err)
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(
			&p.ID, &p.ResourceID, &p.ResourceKind, &p.StartTime, &p.EndTime, &p.Reason, &p.Pattern,
		); err != nil {
			return nil, fmt.Errorf("scan unavailability failed: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unavailability failed: %w", err)
	}
	return out, nil
}
