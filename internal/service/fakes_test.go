package service

import (
	"context"
	"encoding/json"
	"time"

	"pump-radar/internal/domain"
	"pump-radar/internal/mention"
	"pump-radar/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type fakeRedis struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	setErr error
	getErr error
	// onGet runs before Get answers
	onGet func()
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = append([]byte(nil), v...)
	case string:
		f.data[key] = []byte(v)
	default:
		bytes, _ := json.Marshal(v)
		f.data[key] = bytes
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.onGet != nil {
		f.onGet()
	}
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

type mockLister struct {
	exchange string
	pairs    []domain.MarketPair
	err      error
	calls    int
}

func (m *mockLister) Exchange() string { return m.exchange }

func (m *mockLister) ListActivePairs(ctx context.Context) ([]domain.MarketPair, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pairs, nil
}

type mockCounter struct {
	counts map[string]int
	err    error
}

func (m *mockCounter) CountDefinitions(ctx context.Context, word string) (int, error) {
	return m.counts[word], m.err
}

type mockDictionaryStore struct {
	inserted  []*domain.CoinDictionary
	latest    *domain.CoinDictionary
	insertErr error
	onLatest  func()
}

func (m *mockDictionaryStore) Insert(ctx context.Context, dict *domain.CoinDictionary) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	dict.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, dict)
	return nil
}

func (m *mockDictionaryStore) Latest(ctx context.Context) (*domain.CoinDictionary, error) {
	if m.onLatest != nil {
		m.onLatest()
	}
	if m.latest == nil {
		return nil, repository.ErrNoDictionary
	}
	return m.latest, nil
}

type mockGroupStore struct {
	groups  map[int64]*domain.Group
	unknown []domain.UnknownGroupMessage
	getErr  error
	saveErr error
}

func newMockGroupStore(groups ...domain.Group) *mockGroupStore {
	m := &mockGroupStore{groups: make(map[int64]*domain.Group)}
	for i := range groups {
		g := groups[i]
		m.groups[g.ID] = &g
	}
	return m
}

func (m *mockGroupStore) Get(ctx context.Context, id int64) (*domain.Group, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	g, ok := m.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}
	return g, nil
}

func (m *mockGroupStore) Save(ctx context.Context, g domain.Group) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.groups[g.ID]; !ok {
		m.groups[g.ID] = &g
	}
	return nil
}

func (m *mockGroupStore) SetKind(ctx context.Context, id int64, kind domain.GroupKind) error {
	g, ok := m.groups[id]
	if !ok {
		return repository.ErrGroupNotFound
	}
	g.Kind = kind
	return nil
}

func (m *mockGroupStore) SaveUnknownMessage(ctx context.Context, msg domain.UnknownGroupMessage) error {
	m.unknown = append(m.unknown, msg)
	return nil
}

type mockSignalStore struct {
	inserted []domain.PumpSignal
	err      error
}

func (m *mockSignalStore) Insert(ctx context.Context, s *domain.PumpSignal) error {
	if m.err != nil {
		return m.err
	}
	s.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, *s)
	return nil
}

func (m *mockSignalStore) Recent(ctx context.Context, limit int) ([]domain.PumpSignal, error) {
	if limit > len(m.inserted) {
		limit = len(m.inserted)
	}
	return m.inserted[:limit], m.err
}

type staticTickers struct {
	snap *domain.TickerSnapshot
}

func (s staticTickers) Snapshot(ctx context.Context) (*domain.TickerSnapshot, error) {
	if s.snap == nil {
		return nil, ErrTickersUnavailable
	}
	return s.snap, nil
}

type mockClassifier struct {
	sel   mention.Selection
	err   error
	texts []string
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (mention.Selection, error) {
	m.texts = append(m.texts, text)
	return m.sel, m.err
}
