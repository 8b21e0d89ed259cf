package unavailability

import (
	"context"
	"time"
)

// Source supplies the unavailability snapshot for a date range. Real deployments
// back it with maintenance and roster data.
type Source interface {
	PeriodsBetween(ctx context.Context, from, to time.Time) ([]Period, error)
}

// StaticSource serves a fixed list of periods.
type StaticSource []Period

func (s StaticSource) PeriodsBetween(_ context.Context, from, to time.Time) ([]Period, error) {
	var out []Period
	for _, p := range s {
		if p.Overlaps(from, to) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Sources concatenates several sources, keeping each source's order.
type Sources []Source

func (s Sources) PeriodsBetween(ctx context.Context, from, to time.Time) ([]Period, error) {
	var out []Period
	for _, src := range s {
		periods, err := src.PeriodsBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, periods...)
	}
	return out, nil
}
