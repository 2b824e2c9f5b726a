// Package bot feeds Telegram group and channel messages into the signal
// pipeline. It only listens; it answers no commands.
package bot

import (
	"context"
	"time"

	"pump-radar/internal/domain"
	"pump-radar/internal/service"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

const handleTimeout = 15 * time.Second

// MessageHandler consumes one incoming message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg domain.MessageContext) (*service.MessageResult, error)
}

// MessageObserver is told the outcome of every handled message.
type MessageObserver interface {
	ObserveMessage(dropped bool, sig *domain.PumpSignal, err error)
}

var newBot = func(token string) (*tele.Bot, error) {
	return tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
}

type Listener struct {
	handler  MessageHandler
	observer MessageObserver
}

// NewListener builds a listener. observer may be nil.
func NewListener(handler MessageHandler, observer MessageObserver) *Listener {
	return &Listener{handler: handler, observer: observer}
}

// Start connects with token and begins long polling in the background.
// An empty token disables the listener. The returned stop func is never nil.
func (l *Listener) Start(token string) (func(), error) {
	if token == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram listener")
		return func() {}, nil
	}
	b, err := newBot(token)
	if err != nil {
		return func() {}, err
	}

	for _, ev := range []string{tele.OnText, tele.OnPhoto, tele.OnChannelPost} {
		b.Handle(ev, l.onMessage)
	}

	log.Info().Str("username", b.Me.Username).Msg("Telegram listener started")
	go b.Start()
	return b.Stop, nil
}

func (l *Listener) onMessage(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil {
		return nil
	}
	msg := toMessageContext(m)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	res, err := l.handler.HandleMessage(ctx, msg)
	l.observe(res, err)
	if err != nil {
		log.Error().Err(err).Int64("group_id", msg.GroupID).Msg("message handling failed")
		return nil
	}
	if res != nil && res.Signal != nil {
		log.Debug().
			Int64("group_id", msg.GroupID).
			Str("coin", res.Signal.Coin).
			Str("exchange", res.Signal.Exchange).
			Msg("signal stored")
	}
	return nil
}

func toMessageContext(m *tele.Message) domain.MessageContext {
	msg := domain.MessageContext{
		GroupID:  m.Chat.ID,
		Text:     m.Text,
		Caption:  m.Caption,
		HasImage: m.Photo != nil,
	}
	if m.Unixtime != 0 {
		msg.SentAt = m.Time().UTC()
	}
	return msg
}

func (l *Listener) observe(res *service.MessageResult, err error) {
	if l.observer == nil {
		return
	}
	if res == nil {
		l.observer.ObserveMessage(false, nil, err)
		return
	}
	l.observer.ObserveMessage(res.Dropped, res.Signal, err)
}
