package oauth

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const callbackPage = `<!doctype html>
<html><head><title>Troika</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:4em">
<h2>%s</h2><p>You can close this window and return to the terminal.</p>
<script>setTimeout(function(){window.close()},1500)</script>
</body></html>`

// CallbackServer receives the OAuth redirect on a loopback address and
// forwards it as a Message
type CallbackServer struct {
	app      *fiber.App
	addr     string
	path     string
	messages chan Message
	done     chan struct{}
	once     sync.Once
	logger   zerolog.Logger
}

func NewCallbackServer(addr, path string, logger zerolog.Logger) *CallbackServer {
	if path == "" {
		path = "/zoho/callback"
	}
	s := &CallbackServer{
		app: fiber.New(fiber.Config{
			AppName:               "troika-admin oauth callback",
			DisableStartupMessage: true,
		}),
		addr:     addr,
		path:     path,
		messages: make(chan Message, 4),
		done:     make(chan struct{}),
		logger:   logger,
	}

	s.app.Get(path, s.handleRedirect)
	s.app.Post("/zoho/message", s.handleMessage)
	return s
}

// App exposes the fiber app for in-process requests
func (s *CallbackServer) App() *fiber.App {
	return s.app
}

func (s *CallbackServer) Messages() <-chan Message {
	return s.messages
}

// Done is closed once the server has stopped
func (s *CallbackServer) Done() <-chan struct{} {
	return s.done
}

func (s *CallbackServer) RedirectURI() string {
	return "http://" + s.addr + s.path
}

// Start binds the listener and serves in the background
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		defer s.markDone()
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error().Err(err).Msg("oauth callback server stopped")
		}
	}()
	s.logger.Debug().Str("redirect_uri", s.RedirectURI()).Msg("oauth callback server listening")
	return nil
}

func (s *CallbackServer) Shutdown(ctx context.Context) error {
	defer s.markDone()
	return s.app.ShutdownWithContext(ctx)
}

func (s *CallbackServer) markDone() {
	s.once.Do(func() { close(s.done) })
}

func (s *CallbackServer) publish(msg Message) {
	select {
	case s.messages <- msg:
	default:
		s.logger.Warn().Str("type", msg.Type).Msg("dropping oauth message, nobody is waiting")
	}
}

func (s *CallbackServer) handleRedirect(c *fiber.Ctx) error {
	if reason := c.Query("error"); reason != "" {
		if desc := c.Query("error_description"); desc != "" {
			reason += ": " + desc
		}
		s.publish(Message{Type: MessageError, Error: reason})
		c.Type("html")
		return c.Status(fiber.StatusOK).SendString(fmt.Sprintf(callbackPage, "Authorization failed"))
	}

	code := c.Query("code")
	if code == "" {
		c.Type("html")
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf(callbackPage, "Missing authorization code"))
	}

	s.publish(Message{Type: MessageCallback, Code: code})
	c.Type("html")
	return c.SendString(fmt.Sprintf(callbackPage, "Zoho account linked"))
}

func (s *CallbackServer) handleMessage(c *fiber.Ctx) error {
	var msg Message
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid message",
		})
	}
	if !msg.Known() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown message type",
		})
	}

	s.publish(msg)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
	})
}
