package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/scheduler"
)

const creditWatchJob = "credit-watch"

// CreditWatcher flags companies whose remaining credits drop below a threshold.
// Overlapping checks are resolved latest-wins.
type CreditWatcher struct {
	overview  *OverviewService
	threshold int
	latest    apiclient.Latest
	timeout   time.Duration
	logger    zerolog.Logger

	// OnLow receives the rows of each completed check that is still current
	OnLow func([]CompanyRow)
}

func NewCreditWatcher(overview *OverviewService, threshold int, logger zerolog.Logger) *CreditWatcher {
	return &CreditWatcher{overview: overview, threshold: threshold, timeout: time.Minute, logger: logger}
}

// Check returns the companies below the threshold. A check superseded by a
// newer one returns context.Canceled.
func (w *CreditWatcher) Check(ctx context.Context) ([]CompanyRow, error) {
	ctx, ticket := w.latest.Begin(ctx)
	defer w.latest.Done(ticket)

	rows, err := w.overview.Companies(ctx)
	if err != nil {
		return nil, err
	}

	var low []CompanyRow
	for _, row := range rows {
		if row.Credits != nil && row.Credits.RemainingCredits < w.threshold {
			low = append(low, row)
		}
	}

	applied := w.latest.Apply(ticket, func() {
		if w.OnLow != nil {
			w.OnLow(low)
		}
	})
	if !applied {
		return nil, context.Canceled
	}
	return low, nil
}

// Register schedules Check on spec
func (w *CreditWatcher) Register(s *scheduler.Scheduler, spec string) error {
	return s.Add(creditWatchJob, spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		low, err := w.Check(ctx)
		if err != nil {
			w.logger.Warn().Err(err).Msg("credit check failed")
			return
		}
		for _, row := range low {
			w.logger.Warn().
				Str("company_id", row.Company.ID).
				Str("company", row.Company.Name).
				Int("remaining", row.Credits.RemainingCredits).
				Msg("company credits low")
		}
	})
}
