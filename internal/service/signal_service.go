package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pump-radar/internal/domain"
	"pump-radar/internal/mention"
	"pump-radar/internal/repository"
	"pump-radar/internal/signal"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrGroupNotFound    = repository.ErrGroupNotFound
	ErrInvalidGroupKind = errors.New("invalid group kind")
)

// WasteFragments mark invites, registrations and other chatter that never
// carries a pump signal.
var WasteFragments = []string{"joinchat", "t.me/", "register", "sign", "timeanddate", "youtu.be"}

type SignalStore interface {
	Insert(ctx context.Context, s *domain.PumpSignal) error
	Recent(ctx context.Context, limit int) ([]domain.PumpSignal, error)
}

type GroupStore interface {
	Get(ctx context.Context, id int64) (*domain.Group, error)
	Save(ctx context.Context, g domain.Group) error
	SetKind(ctx context.Context, id int64, kind domain.GroupKind) error
	SaveUnknownMessage(ctx context.Context, m domain.UnknownGroupMessage) error
}

type TickerSource interface {
	Snapshot(ctx context.Context) (*domain.TickerSnapshot, error)
}

type PumpWindow interface {
	Record(ctx context.Context, p domain.ExpectedPump, now time.Time) error
	InWindow(ctx context.Context, groupID int64, at time.Time) (bool, *domain.ExpectedPump, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (mention.Selection, error)
}

// MessageResult reports what happened to one incoming message.
// Classification is only set for image groups whose caption scored above
// zero against the dictionary.
type MessageResult struct {
	Dropped        bool               `json:"dropped,omitempty"`
	GroupKind      domain.GroupKind   `json:"group_kind,omitempty"`
	Signal         *domain.PumpSignal `json:"signal,omitempty"`
	Classification *mention.Selection `json:"classification,omitempty"`
}

type SignalService struct {
	tracer     trace.Tracer
	extractor  *signal.Extractor
	tickers    TickerSource
	groups     GroupStore
	signals    SignalStore
	pumps      PumpWindow
	classifier Classifier
	now        func() time.Time
}

func NewSignalService(
	tracer trace.Tracer,
	extractor *signal.Extractor,
	tickers TickerSource,
	groups GroupStore,
	signals SignalStore,
	pumps PumpWindow,
	classifier Classifier,
) *SignalService {
	return &SignalService{
		tracer:     tracer,
		extractor:  extractor,
		tickers:    tickers,
		groups:     groups,
		signals:    signals,
		pumps:      pumps,
		classifier: classifier,
		now:        time.Now,
	}
}

// IsWaste reports whether text is empty or contains a waste fragment.
func IsWaste(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	for _, f := range WasteFragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}

// Extract runs the extraction pipeline against the current snapshot without
// touching any store.
func (s *SignalService) Extract(ctx context.Context, msg domain.MessageContext) (domain.PumpSignal, error) {
	ctx, span := s.tracer.Start(ctx, "signal-service.extract")
	defer span.End()

	snap, err := s.tickers.Snapshot(ctx)
	if err != nil {
		return domain.PumpSignal{}, err
	}
	return s.extractor.Extract(msg, snap), nil
}

// HandleMessage processes one channel message end to end.
func (s *SignalService) HandleMessage(ctx context.Context, msg domain.MessageContext) (*MessageResult, error) {
	ctx, span := s.tracer.Start(ctx, "signal-service.handle-message")
	defer span.End()
	span.SetAttributes(attribute.Int64("group_id", msg.GroupID))

	if msg.SentAt.IsZero() {
		msg.SentAt = s.now()
	}
	if msg.Text == "" {
		msg.Text = msg.Caption
	}
	if IsWaste(msg.Text) {
		return &MessageResult{Dropped: true}, nil
	}

	kind, err := s.registerGroup(ctx, msg)
	if err != nil {
		return nil, err
	}
	result := &MessageResult{GroupKind: kind}

	sig, err := s.Extract(ctx, msg)
	if errors.Is(err, ErrTickersUnavailable) {
		log.Warn().Int64("group_id", msg.GroupID).Msg("no ticker snapshot yet, coin matching skipped")
		sig = s.extractor.Extract(msg, nil)
	} else if err != nil {
		return nil, err
	}

	if sig.Coin != "" {
		s.checkExpectedWindow(ctx, &sig, msg.SentAt)
	}
	if sig.MinutesToPump != nil {
		expected := domain.ExpectedPump{
			GroupID:    msg.GroupID,
			ExpectedAt: msg.SentAt.Add(time.Duration(*sig.MinutesToPump) * time.Minute).UTC(),
			Exchange:   sig.Exchange,
		}
		if err := s.pumps.Record(ctx, expected, msg.SentAt); err != nil {
			return nil, err
		}
	}

	if kind == domain.GroupKindImage && s.classifier != nil {
		sel, err := s.classifier.Classify(ctx, msg.Text)
		switch {
		case errors.Is(err, ErrNoDictionary):
			log.Warn().Int64("group_id", msg.GroupID).Msg("no coin dictionary, caption not classified")
		case err != nil:
			return nil, err
		case sel.Score > 0:
			result.Classification = &sel
		default:
			log.Debug().Int64("group_id", msg.GroupID).Msg("caption mentions no dictionary coin")
		}
	}

	if !sig.IsEmpty() {
		if err := s.signals.Insert(ctx, &sig); err != nil {
			return nil, err
		}
		result.Signal = &sig
	}
	return result, nil
}

// SetGroupKind reclassifies a registered group. Later messages of image
// groups get their captions classified.
func (s *SignalService) SetGroupKind(ctx context.Context, groupID int64, kind domain.GroupKind) error {
	ctx, span := s.tracer.Start(ctx, "signal-service.set-group-kind")
	defer span.End()
	span.SetAttributes(attribute.Int64("group_id", groupID), attribute.String("kind", string(kind)))

	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGroupKind, kind)
	}
	if err := s.groups.SetKind(ctx, groupID, kind); err != nil {
		return err
	}
	log.Info().Int64("group_id", groupID).Str("kind", string(kind)).Msg("group reclassified")
	return nil
}

// Recent returns stored signals, newest first.
func (s *SignalService) Recent(ctx context.Context, limit int) ([]domain.PumpSignal, error) {
	ctx, span := s.tracer.Start(ctx, "signal-service.recent")
	defer span.End()
	return s.signals.Recent(ctx, limit)
}

// registerGroup returns the group's kind. Groups seen for the first time
// are registered as unknown; messages of unknown groups are kept for review.
func (s *SignalService) registerGroup(ctx context.Context, msg domain.MessageContext) (domain.GroupKind, error) {
	kind := domain.GroupKindUnknown
	g, err := s.groups.Get(ctx, msg.GroupID)
	switch {
	case errors.Is(err, repository.ErrGroupNotFound):
		log.Info().Int64("group_id", msg.GroupID).Msg("message from unlisted group, registering")
		if err := s.groups.Save(ctx, domain.Group{ID: msg.GroupID, Kind: domain.GroupKindUnknown}); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		kind = g.Kind
	}

	if kind == domain.GroupKindUnknown {
		err := s.groups.SaveUnknownMessage(ctx, domain.UnknownGroupMessage{
			GroupID:    msg.GroupID,
			Text:       msg.Text,
			ReceivedAt: msg.SentAt.UTC(),
		})
		if err != nil {
			return "", fmt.Errorf("keep unknown group message: %w", err)
		}
	}
	return kind, nil
}

func (s *SignalService) checkExpectedWindow(ctx context.Context, sig *domain.PumpSignal, at time.Time) {
	in, expected, err := s.pumps.InWindow(ctx, sig.GroupID, at)
	if err != nil {
		log.Warn().Err(err).Int64("group_id", sig.GroupID).Msg("expected pump lookup failed")
		return
	}
	if !in {
		return
	}
	sig.InExpectedWindow = true
	if sig.Exchange == "" {
		sig.Exchange = expected.Exchange
	}
	log.Info().
		Int64("group_id", sig.GroupID).
		Str("coin", sig.Coin).
		Str("exchange", sig.Exchange).
		Time("expected_at", expected.ExpectedAt).
		Time("sent_at", at).
		Msg("pump detected")
}
