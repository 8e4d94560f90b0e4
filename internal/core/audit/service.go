package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service writes and queries the local audit log
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{db: db, logger: logger, now: time.Now}
}

// Log stores entry, filling ID and CreatedAt when unset
func (s *Service) Log(ctx context.Context, entry *AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// Change describes a mutating call for Record
type Change struct {
	Actor       string
	Action      string
	Entity      string
	EntityID    string
	Old         any
	New         any
	Method      string
	Endpoint    string
	Status      int
	Description string
}

// Record logs a change. Failures are logged and swallowed: auditing never
// fails the command that triggered it.
func (s *Service) Record(ctx context.Context, c Change) {
	if s == nil {
		return
	}
	entry := &AuditLog{
		Actor:       c.Actor,
		Action:      c.Action,
		Entity:      c.Entity,
		EntityID:    c.EntityID,
		OldValue:    s.toJSON("old_value", c.Old),
		NewValue:    s.toJSON("new_value", c.New),
		Method:      c.Method,
		Endpoint:    c.Endpoint,
		Status:      c.Status,
		Description: c.Description,
	}
	if err := s.Log(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("entity", c.Entity).Str("action", c.Action).Msg("audit entry not recorded")
	}
}

// List returns matching entries, newest first
func (s *Service) List(ctx context.Context, filter Filter) (*Page, error) {
	query := s.db.WithContext(ctx).Model(&AuditLog{})

	if filter.Actor != "" {
		query = query.Where("actor = ?", filter.Actor)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	var logs []AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	pages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		pages++
	}
	return &Page{
		Logs:       logs,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: pages,
	}, nil
}

// Prune deletes entries older than daysToKeep
func (s *Service) Prune(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("daysToKeep must be at least 1")
	}
	cutoff := s.now().UTC().AddDate(0, 0, -daysToKeep)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&AuditLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune audit logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *Service) toJSON(field string, value any) datatypes.JSON {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn().Err(err).Str("field", field).Msg("failed to serialize audit value")
		return nil
	}
	return datatypes.JSON(raw)
}
