package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded by the console
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// AuditLog is one mutating admin action performed from this machine
type AuditLog struct {
	ID string `json:"id" gorm:"primaryKey;size:36"`

	Actor    string `json:"actor"`               // operator email
	Action   string `json:"action" gorm:"index"` // create, update, delete, login, logout
	Entity   string `json:"entity" gorm:"index"` // company, credits, chatbot, ...
	EntityID string `json:"entity_id"`

	OldValue datatypes.JSON `json:"old_value,omitempty"`
	NewValue datatypes.JSON `json:"new_value,omitempty"`

	Method   string `json:"method,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Status   int    `json:"status,omitempty"` // HTTP status, 0 when no request was made

	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter selects audit entries
type Filter struct {
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Page is one page of audit entries, newest first
type Page struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
