package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/export"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 50
)

// MessageFilter narrows message history. Zero values are left out of the query.
type MessageFilter struct {
	Start     time.Time
	End       time.Time
	Email     string
	Phone     string
	SessionID string
	GuestOnly bool

	PageSize int
	MaxPages int
}

func (f MessageFilter) params(page int) map[string]any {
	limit := f.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	return map[string]any{
		"page":      page,
		"limit":     limit,
		"startDate": f.Start,
		"endDate":   f.End,
		"email":     f.Email,
		"phone":     f.Phone,
		"sessionId": f.SessionID,
	}
}

type MessageService struct {
	api      *endpoints.Endpoints
	exporter *export.Service
	logger   zerolog.Logger
}

func NewMessageService(api *endpoints.Endpoints, exporter *export.Service, logger zerolog.Logger) *MessageService {
	return &MessageService{api: api, exporter: exporter, logger: logger}
}

// Page fetches one page of history
func (s *MessageService) Page(ctx context.Context, chatbotID string, filter MessageFilter, page int) (*models.MessagePage, error) {
	if page < 1 {
		page = 1
	}
	resp, err := s.api.ListMessages(ctx, chatbotID, filter.params(page))
	if err != nil {
		return nil, err
	}
	result, err := decodeObject[models.MessagePage](resp, "")
	if err != nil {
		return nil, err
	}
	if filter.GuestOnly {
		result.Messages = guestOnly(result.Messages)
	}
	return result, nil
}

// History walks pages until the last one, an empty page or MaxPages
func (s *MessageService) History(ctx context.Context, chatbotID string, filter MessageFilter) ([]models.Message, error) {
	maxPages := filter.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	guest := filter.GuestOnly
	filter.GuestOnly = false

	var all []models.Message
	for page := 1; page <= maxPages; page++ {
		result, err := s.Page(ctx, chatbotID, filter, page)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Messages...)
		if len(result.Messages) == 0 || result.TotalPages <= page {
			break
		}
		if page == maxPages {
			s.logger.Warn().Str("chatbot_id", chatbotID).Int("pages", maxPages).Msg("message history truncated")
		}
	}

	if guest {
		all = guestOnly(all)
	}
	return all, nil
}

func guestOnly(messages []models.Message) []models.Message {
	out := messages[:0:0]
	for _, m := range messages {
		if export.IsGuestUser(m) {
			out = append(out, m)
		}
	}
	return out
}

// Export pairs the history into turns and writes it in format. It returns
// the number of rows written.
func (s *MessageService) Export(ctx context.Context, chatbotID string, filter MessageFilter, format export.Format, w io.Writer) (int, error) {
	messages, err := s.History(ctx, chatbotID, filter)
	if err != nil {
		return 0, err
	}

	turns := export.PairConversation(messages)
	table := export.ConversationTable("Chat history "+chatbotID, turns)
	table.GeneratedAt = time.Now()
	if !filter.Start.IsZero() || !filter.End.IsZero() {
		table.Subtitle = fmt.Sprintf("%s to %s", dateOrDash(filter.Start), dateOrDash(filter.End))
	}

	if err := s.exporter.ExportToWriter(table, format, w); err != nil {
		return 0, err
	}
	return len(turns), nil
}

// Download streams a backend-rendered export (PDF report or data export)
func (s *MessageService) Download(ctx context.Context, chatbotID string, report bool, filter MessageFilter, w io.Writer) (string, error) {
	params := filter.params(1)
	delete(params, "page")
	delete(params, "limit")

	get := s.api.ExportMessages
	if report {
		get = s.api.DownloadReport
	}
	resp, err := get(ctx, chatbotID, params)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(resp.Body()); err != nil {
		return "", fmt.Errorf("failed to write download: %w", err)
	}
	return resp.ContentType(), nil
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
