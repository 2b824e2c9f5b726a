package service

import (
	"context"
	"errors"
	"testing"

	"pump-radar/internal/domain"
	"pump-radar/internal/market"
	"pump-radar/internal/mention"
)

func newTestDictionaryService(lister *mockLister, counter *mockCounter, store *mockDictionaryStore) (*DictionaryService, *market.Book) {
	book := market.NewBook()
	tickers := NewTickerService(testTracer, book, nil, lister)
	builder := mention.NewBuilder(counter, mention.BuilderConfig{MaxCoins: 5})
	svc := NewDictionaryService(testTracer, tickers, builder, mention.NewScorer(mention.WeightCanonical), store, book, "bittrex")
	return svc, book
}

func TestDictionaryService_Rebuild(t *testing.T) {
	t.Parallel()

	lister := &mockLister{exchange: "bittrex", pairs: []domain.MarketPair{
		{Ticker: "LTC", Name: "Litecoin"},
		{Ticker: "FCT", Name: "Factom"},
	}}
	store := &mockDictionaryStore{}
	svc, book := newTestDictionaryService(lister, &mockCounter{counts: map[string]int{"Lite": 4}}, store)

	dict, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.inserted) != 1 || dict.ID != 1 {
		t.Fatalf("expected dictionary to be stored, got %+v", store.inserted)
	}
	if book.Dictionary() != dict {
		t.Fatal("rebuilt dictionary not published")
	}
	if got := dict.Tickers(); len(got) != 2 || got[0] != "LTC" || got[1] != "FCT" {
		t.Fatalf("unexpected tickers %v", got)
	}
	for _, g := range dict.Groups {
		if g[0].TrustWeight != 1 {
			t.Fatalf("canonical weight must be 1, got %+v", g)
		}
	}
}

func TestDictionaryService_RebuildFailuresKeepPublished(t *testing.T) {
	t.Parallel()

	published := &domain.CoinDictionary{ID: 9, Groups: []domain.CoinAliasGroup{{{Text: "OLD", TrustWeight: 1}}}}

	cases := map[string]struct {
		lister  *mockLister
		counter *mockCounter
		store   *mockDictionaryStore
	}{
		"listing fails": {
			lister:  &mockLister{exchange: "bittrex", err: errors.New("502")},
			counter: &mockCounter{},
			store:   &mockDictionaryStore{},
		},
		"lookup fails": {
			lister:  &mockLister{exchange: "bittrex", pairs: []domain.MarketPair{{Ticker: "ETH", Name: "Ethereum"}}},
			counter: &mockCounter{err: errors.New("quota exceeded")},
			store:   &mockDictionaryStore{},
		},
		"insert fails": {
			lister:  &mockLister{exchange: "bittrex", pairs: []domain.MarketPair{{Ticker: "ETH", Name: "Ethereum"}}},
			counter: &mockCounter{},
			store:   &mockDictionaryStore{insertErr: errors.New("disk full")},
		},
		"no pairs": {
			lister:  &mockLister{exchange: "bittrex"},
			counter: &mockCounter{},
			store:   &mockDictionaryStore{},
		},
	}
	for name, c := range cases {
		svc, book := newTestDictionaryService(c.lister, c.counter, c.store)
		book.SwapDictionary(published)

		if _, err := svc.Rebuild(context.Background()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if book.Dictionary() != published {
			t.Fatalf("%s: published dictionary replaced", name)
		}
	}
}

func TestDictionaryService_LatestLoadsFromStore(t *testing.T) {
	t.Parallel()

	stored := &domain.CoinDictionary{ID: 4, Groups: []domain.CoinAliasGroup{{{Text: "FCT", TrustWeight: 1}}}}
	svc, book := newTestDictionaryService(&mockLister{exchange: "bittrex"}, &mockCounter{}, &mockDictionaryStore{latest: stored})

	dict, err := svc.Latest(context.Background())
	if err != nil || dict != stored {
		t.Fatalf("unexpected latest %+v, %v", dict, err)
	}
	if book.Dictionary() != stored {
		t.Fatal("latest dictionary not cached in book")
	}
}

func TestDictionaryService_LatestLosesToConcurrentRebuild(t *testing.T) {
	t.Parallel()

	stored := &domain.CoinDictionary{ID: 1, Groups: []domain.CoinAliasGroup{{{Text: "OLD", TrustWeight: 1}}}}
	rebuilt := &domain.CoinDictionary{ID: 2, Groups: []domain.CoinAliasGroup{{{Text: "NEW", TrustWeight: 1}}}}
	store := &mockDictionaryStore{latest: stored}
	svc, book := newTestDictionaryService(&mockLister{exchange: "bittrex"}, &mockCounter{}, store)
	store.onLatest = func() { book.SwapDictionary(rebuilt) }

	dict, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dict != rebuilt || book.Dictionary() != rebuilt {
		t.Fatalf("rebuilt dictionary replaced by stored one: got %d, book %d", dict.ID, book.Dictionary().ID)
	}
}

func TestDictionaryService_Classify(t *testing.T) {
	t.Parallel()

	stored := &domain.CoinDictionary{ID: 4, Groups: []domain.CoinAliasGroup{
		{{Text: "FCT", TrustWeight: 1}, {Text: "Factom", TrustWeight: 1}},
		{{Text: "LTC", TrustWeight: 1}, {Text: "Litecoin", TrustWeight: 1}},
	}}
	svc, _ := newTestDictionaryService(&mockLister{exchange: "bittrex"}, &mockCounter{}, &mockDictionaryStore{latest: stored})

	sel, err := svc.Classify(context.Background(), "FACTOM (FCT) is endorsed by many. FACTOM.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Ticker != "FCT" || sel.Score != 3 {
		t.Fatalf("unexpected selection %+v", sel)
	}

	empty, _ := newTestDictionaryService(&mockLister{exchange: "bittrex"}, &mockCounter{}, &mockDictionaryStore{})
	if _, err := empty.Classify(context.Background(), "fct"); !errors.Is(err, ErrNoDictionary) {
		t.Fatalf("expected ErrNoDictionary, got %v", err)
	}
}
