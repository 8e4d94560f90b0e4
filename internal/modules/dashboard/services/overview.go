package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

const defaultFanOut = 8

// CompanyRow is a company with its credit balance. Credits is nil when the
// balance could not be loaded.
type CompanyRow struct {
	Company    models.Company
	Credits    *models.CreditBalance
	CreditsErr error
}

// ChatbotRow is a chatbot with its subscription and plan merged in
type ChatbotRow struct {
	Chatbot      models.Chatbot
	Subscription *models.Subscription
	PlanName     string
	ExpiresAt    time.Time
	DaysLeft     int
}

// OverviewService loads the dashboard tables
type OverviewService struct {
	api    *endpoints.Endpoints
	logger zerolog.Logger
	fanOut int
	now    func() time.Time
}

func NewOverviewService(api *endpoints.Endpoints, logger zerolog.Logger) *OverviewService {
	return &OverviewService{api: api, logger: logger, fanOut: defaultFanOut, now: time.Now}
}

// Companies lists companies and fetches every credit balance concurrently.
// A failed balance is reported on its row; a failed company list fails the call.
func (s *OverviewService) Companies(ctx context.Context) ([]CompanyRow, error) {
	resp, err := s.api.ListCompanies(ctx, nil)
	if err != nil {
		return nil, err
	}
	companies, err := decodeList[models.Company](resp, "companies")
	if err != nil {
		return nil, err
	}

	rows := make([]CompanyRow, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, c := range companies {
		i, c := i, c
		rows[i].Company = c
		g.Go(func() error {
			resp, err := s.api.GetCompanyCredits(gctx, c.ID)
			if err == nil {
				rows[i].Credits, err = decodeObject[models.CreditBalance](resp, "credits")
			}
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				rows[i].CreditsErr = err
				s.logger.Warn().Err(err).Str("company_id", c.ID).Msg("failed to load credits")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Chatbots loads chatbots, subscriptions and plans in parallel and merges
// them. An empty companyID lists every chatbot.
func (s *OverviewService) Chatbots(ctx context.Context, companyID string) ([]ChatbotRow, error) {
	var (
		chatbots      []models.Chatbot
		subscriptions []models.Subscription
		plans         []models.Plan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.api.ListChatbots(gctx, map[string]any{"companyId": companyID})
		if err != nil {
			return fmt.Errorf("failed to load chatbots: %w", err)
		}
		chatbots, err = decodeList[models.Chatbot](resp, "chatbots")
		return err
	})
	g.Go(func() error {
		resp, err := s.api.ListSubscriptions(gctx, map[string]any{"companyId": companyID})
		if err != nil {
			return fmt.Errorf("failed to load subscriptions: %w", err)
		}
		subscriptions, err = decodeList[models.Subscription](resp, "subscriptions")
		return err
	})
	g.Go(func() error {
		resp, err := s.api.ListPlans(gctx)
		if err != nil {
			return fmt.Errorf("failed to load plans: %w", err)
		}
		plans, err = decodeList[models.Plan](resp, "plans")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	planNames := make(map[string]string, len(plans))
	for _, p := range plans {
		planNames[p.ID] = p.Name
	}
	// latest subscription per chatbot
	latest := make(map[string]*models.Subscription, len(subscriptions))
	for i := range subscriptions {
		sub := &subscriptions[i]
		if cur, ok := latest[sub.ChatbotID]; !ok || sub.EndDate.After(cur.EndDate) {
			latest[sub.ChatbotID] = sub
		}
	}

	now := s.now()
	rows := make([]ChatbotRow, 0, len(chatbots))
	for _, bot := range chatbots {
		row := ChatbotRow{Chatbot: bot, Subscription: bot.Subscription}
		if sub, ok := latest[bot.ID]; ok {
			row.Subscription = sub
		}
		if sub := row.Subscription; sub != nil {
			row.PlanName = sub.PlanName
			if name, ok := planNames[sub.PlanID]; ok && name != "" {
				row.PlanName = name
			}
			row.ExpiresAt = sub.EndDate
			row.DaysLeft = sub.DaysLeft(now)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Chatbot.Name < rows[j].Chatbot.Name })
	return rows, nil
}
