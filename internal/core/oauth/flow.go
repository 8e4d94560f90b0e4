package oauth

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultTimeout      = 5 * time.Minute
)

// Exchanger trades an authorization code for a refresh token
type Exchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

type ExchangerFunc func(ctx context.Context, code string) (string, error)

func (f ExchangerFunc) Exchange(ctx context.Context, code string) (string, error) {
	return f(ctx, code)
}

// Flow runs one authorization at a time
type Flow struct {
	PollInterval time.Duration
	Timeout      time.Duration

	popup      Popup
	messages   <-chan Message
	exchanger  Exchanger
	generating atomic.Bool
	logger     zerolog.Logger
}

func NewFlow(popup Popup, messages <-chan Message, exchanger Exchanger, logger zerolog.Logger) *Flow {
	return &Flow{
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
		popup:        popup,
		messages:     messages,
		exchanger:    exchanger,
		logger:       logger,
	}
}

// Generating reports whether an authorization is in progress
func (f *Flow) Generating() bool {
	return f.generating.Load()
}

// Run opens authURL and blocks until a refresh token is obtained, the
// provider reports an error, the window is closed, the timeout elapses or
// ctx is cancelled. The token is only returned, never persisted.
func (f *Flow) Run(ctx context.Context, authURL string) (string, error) {
	if !f.generating.CompareAndSwap(false, true) {
		return "", ErrInProgress
	}
	defer f.generating.Store(false)

	if err := f.popup.Open(authURL); err != nil {
		return "", fmt.Errorf("failed to open authorization window: %w", err)
	}

	poll := time.NewTicker(f.PollInterval)
	defer poll.Stop()
	timeout := time.NewTimer(f.Timeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			f.closePopup()
			return "", ctx.Err()

		case <-timeout.C:
			f.logger.Warn().Dur("timeout", f.Timeout).Msg("zoho authorization timed out")
			f.closePopup()
			return "", ErrTimeout

		case <-poll.C:
			if !f.popup.Closed() {
				continue
			}
			// a message may have landed just before the window went away
			select {
			case msg := <-f.messages:
				if token, done, err := f.handle(ctx, msg); done {
					return token, err
				}
			default:
			}
			return "", ErrPopupClosed

		case msg, ok := <-f.messages:
			if !ok {
				return "", ErrPopupClosed
			}
			if token, done, err := f.handle(ctx, msg); done {
				return token, err
			}
		}
	}
}

func (f *Flow) handle(ctx context.Context, msg Message) (string, bool, error) {
	switch msg.Type {
	case MessageCallback:
		if msg.Code == "" {
			return "", false, nil
		}
		f.closePopup()
		token, err := f.exchanger.Exchange(ctx, msg.Code)
		if err != nil {
			return "", true, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		if token == "" {
			return "", true, ErrNoRefreshToken
		}
		return token, true, nil

	case MessageRefreshToken:
		f.closePopup()
		if msg.RefreshToken == "" {
			return "", true, ErrNoRefreshToken
		}
		return msg.RefreshToken, true, nil

	case MessageError:
		f.closePopup()
		return "", true, &ProviderError{Reason: msg.Error}
	}

	f.logger.Debug().Str("type", msg.Type).Msg("ignoring unrelated message")
	return "", false, nil
}

func (f *Flow) closePopup() {
	if err := f.popup.Close(); err != nil {
		f.logger.Warn().Err(err).Msg("failed to close authorization window")
	}
}
