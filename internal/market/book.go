// Package market holds the process-wide view of active tickers and the
// latest coin dictionary. Both are replaced wholesale, never edited.
package market

import (
	"sync/atomic"

	"pump-radar/internal/domain"
)

// Book publishes immutable snapshots to concurrent readers. Readers keep
// whatever snapshot they loaded for the duration of their work.
type Book struct {
	tickers    atomic.Pointer[domain.TickerSnapshot]
	dictionary atomic.Pointer[domain.CoinDictionary]
}

func NewBook() *Book {
	return &Book{}
}

// Tickers returns the current snapshot or nil before the first refresh.
func (b *Book) Tickers() *domain.TickerSnapshot {
	return b.tickers.Load()
}

// SwapTickers installs next and returns the snapshot it replaced. A nil
// next is ignored so a failed refresh can never blank the book.
func (b *Book) SwapTickers(next *domain.TickerSnapshot) *domain.TickerSnapshot {
	if next == nil {
		return b.tickers.Load()
	}
	return b.tickers.Swap(next)
}

// InitTickers installs snap only while the book is still empty and returns
// whatever snapshot is current afterwards.
func (b *Book) InitTickers(snap *domain.TickerSnapshot) *domain.TickerSnapshot {
	if snap != nil && b.tickers.CompareAndSwap(nil, snap) {
		return snap
	}
	return b.tickers.Load()
}

func (b *Book) Dictionary() *domain.CoinDictionary {
	return b.dictionary.Load()
}

func (b *Book) SwapDictionary(next *domain.CoinDictionary) *domain.CoinDictionary {
	if next == nil {
		return b.dictionary.Load()
	}
	return b.dictionary.Swap(next)
}

// InitDictionary is InitTickers for the dictionary.
func (b *Book) InitDictionary(dict *domain.CoinDictionary) *domain.CoinDictionary {
	if dict != nil && b.dictionary.CompareAndSwap(nil, dict) {
		return dict
	}
	return b.dictionary.Load()
}
