package repository

import (
	"context"
	"fmt"
	"time"

	"pump-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const maxRecentSignals = 500

type SignalRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSignalRepository(pool PgxPool, tracer trace.Tracer) *SignalRepository {
	return &SignalRepository{pool: pool, tracer: tracer}
}

func (r *SignalRepository) Insert(ctx context.Context, s *domain.PumpSignal) error {
	ctx, span := r.tracer.Start(ctx, "signal-repo.insert")
	defer span.End()

	candidates := s.Candidates
	if candidates == nil {
		candidates = []string{}
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO pump_signals
		     (group_id, coin, exchange, minutes_to_pump, candidates, from_link, in_expected_window, detected_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		s.GroupID, s.Coin, s.Exchange, s.MinutesToPump, candidates, s.FromLink, s.InExpectedWindow, s.DetectedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert pump signal: %w", err)
	}
	s.ID = id
	return nil
}

// Recent returns up to limit signals, newest first.
func (r *SignalRepository) Recent(ctx context.Context, limit int) ([]domain.PumpSignal, error) {
	ctx, span := r.tracer.Start(ctx, "signal-repo.recent")
	defer span.End()

	if limit <= 0 || limit > maxRecentSignals {
		limit = maxRecentSignals
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, group_id, coin, exchange, minutes_to_pump, candidates, from_link, in_expected_window, detected_at
		 FROM pump_signals
		 ORDER BY detected_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent signals: %w", err)
	}
	defer rows.Close()

	var signals []domain.PumpSignal
	for rows.Next() {
		var (
			s  domain.PumpSignal
			ts time.Time
		)
		if err := rows.Scan(&s.ID, &s.GroupID, &s.Coin, &s.Exchange, &s.MinutesToPump,
			&s.Candidates, &s.FromLink, &s.InExpectedWindow, &ts); err != nil {
			return nil, fmt.Errorf("scan pump signal: %w", err)
		}
		if len(s.Candidates) == 0 {
			s.Candidates = nil
		}
		s.DetectedAt = ts.UTC()
		signals = append(signals, s)
	}
	return signals, rows.Err()
}
