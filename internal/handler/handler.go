package handler

import (
	"context"

	"pump-radar/internal/domain"
	"pump-radar/internal/mention"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type SignalReader interface {
	Extract(ctx context.Context, msg domain.MessageContext) (domain.PumpSignal, error)
	Recent(ctx context.Context, limit int) ([]domain.PumpSignal, error)
	SetGroupKind(ctx context.Context, groupID int64, kind domain.GroupKind) error
}

type DictionaryManager interface {
	Rebuild(ctx context.Context) (*domain.CoinDictionary, error)
	Latest(ctx context.Context) (*domain.CoinDictionary, error)
	Classify(ctx context.Context, text string) (mention.Selection, error)
}

type TickerReader interface {
	Snapshot(ctx context.Context) (*domain.TickerSnapshot, error)
}

type Handler struct {
	tracer       trace.Tracer
	signals      SignalReader
	dictionaries DictionaryManager
	tickers      TickerReader
	apiKey       string
}

func New(tracer trace.Tracer, signals SignalReader, dictionaries DictionaryManager, tickers TickerReader, apiKey string) *Handler {
	return &Handler{
		tracer:       tracer,
		signals:      signals,
		dictionaries: dictionaries,
		tickers:      tickers,
		apiKey:       apiKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(h.apiKey))
	api.POST("/signals/extract", h.ExtractSignal)
	api.GET("/signals", h.RecentSignals)
	api.POST("/mentions/classify", h.ClassifyMention)
	api.POST("/dictionaries/rebuild", h.RebuildDictionary)
	api.GET("/dictionaries/latest", h.LatestDictionary)
	api.GET("/tickers", h.Tickers)
	api.PUT("/groups/:id/kind", h.SetGroupKind)
}
