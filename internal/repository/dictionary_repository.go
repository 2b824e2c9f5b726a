package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pump-radar/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoDictionary = errors.New("no coin dictionary stored")

type DictionaryRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewDictionaryRepository(pool PgxPool, tracer trace.Tracer) *DictionaryRepository {
	return &DictionaryRepository{pool: pool, tracer: tracer}
}

// Insert appends a dictionary and sets its ID. Older builds are kept.
func (r *DictionaryRepository) Insert(ctx context.Context, dict *domain.CoinDictionary) error {
	ctx, span := r.tracer.Start(ctx, "dictionary-repo.insert")
	defer span.End()

	groups, err := json.Marshal(dict.Groups)
	if err != nil {
		return fmt.Errorf("encode dictionary groups: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO coin_dictionaries (built_at, groups) VALUES ($1, $2) RETURNING id`,
		dict.BuiltAt, groups,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert dictionary: %w", err)
	}
	dict.ID = id
	return nil
}

// Latest returns the most recently built dictionary or ErrNoDictionary.
func (r *DictionaryRepository) Latest(ctx context.Context) (*domain.CoinDictionary, error) {
	ctx, span := r.tracer.Start(ctx, "dictionary-repo.latest")
	defer span.End()

	var (
		dict    domain.CoinDictionary
		builtAt time.Time
		groups  []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, built_at, groups
		 FROM coin_dictionaries
		 ORDER BY built_at DESC, id DESC
		 LIMIT 1`,
	).Scan(&dict.ID, &builtAt, &groups)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDictionary
	}
	if err != nil {
		return nil, fmt.Errorf("load latest dictionary: %w", err)
	}
	if err := json.Unmarshal(groups, &dict.Groups); err != nil {
		return nil, fmt.Errorf("decode dictionary %d: %w", dict.ID, err)
	}
	dict.BuiltAt = builtAt.UTC()
	return &dict, nil
}
