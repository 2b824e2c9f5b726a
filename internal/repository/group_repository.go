package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pump-radar/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

var ErrGroupNotFound = errors.New("group not registered")

type GroupRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewGroupRepository(pool PgxPool, tracer trace.Tracer) *GroupRepository {
	return &GroupRepository{pool: pool, tracer: tracer}
}

func (r *GroupRepository) Get(ctx context.Context, id int64) (*domain.Group, error) {
	ctx, span := r.tracer.Start(ctx, "group-repo.get")
	defer span.End()

	var (
		g       domain.Group
		kind    string
		created time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, kind, created_at FROM telegram_groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.Title, &kind, &created)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load group %d: %w", id, err)
	}
	g.Kind = domain.GroupKind(kind)
	g.CreatedAt = created.UTC()
	return &g, nil
}

// Save registers a group. An existing registration keeps its kind.
func (r *GroupRepository) Save(ctx context.Context, g domain.Group) error {
	ctx, span := r.tracer.Start(ctx, "group-repo.save")
	defer span.End()

	if !g.Kind.IsValid() {
		return fmt.Errorf("save group %d: invalid kind %q", g.ID, g.Kind)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO telegram_groups (id, title, kind)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		g.ID, g.Title, string(g.Kind),
	)
	if err != nil {
		return fmt.Errorf("save group %d: %w", g.ID, err)
	}
	return nil
}

// SetKind reclassifies a registered group.
func (r *GroupRepository) SetKind(ctx context.Context, id int64, kind domain.GroupKind) error {
	ctx, span := r.tracer.Start(ctx, "group-repo.set-kind")
	defer span.End()

	if !kind.IsValid() {
		return fmt.Errorf("set kind of group %d: invalid kind %q", id, kind)
	}
	tag, err := r.pool.Exec(ctx, `UPDATE telegram_groups SET kind = $2 WHERE id = $1`, id, string(kind))
	if err != nil {
		return fmt.Errorf("set kind of group %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) SaveUnknownMessage(ctx context.Context, m domain.UnknownGroupMessage) error {
	ctx, span := r.tracer.Start(ctx, "group-repo.save-unknown-message")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO unknown_group_messages (group_id, text, received_at) VALUES ($1, $2, $3)`,
		m.GroupID, m.Text, m.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("save message of unknown group %d: %w", m.GroupID, err)
	}
	return nil
}
