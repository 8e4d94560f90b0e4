package models

import "time"

const (
	ChatbotActive   = "active"
	ChatbotInactive = "inactive"
)

// Chatbot represents a conversational agent belonging to a company
type Chatbot struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CompanyID    string        `json:"company_id"`
	CompanyName  string        `json:"company_name,omitempty"`
	Status       string        `json:"status"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type CreateChatbotRequest struct {
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
	PlanID    string `json:"plan_id,omitempty"`
	Months    int    `json:"months,omitempty"`
}

type UpdateChatbotRequest struct {
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}

type RenewChatbotRequest struct {
	PlanID string `json:"plan_id"`
	Months int    `json:"months"`
}

type ChatbotStatusRequest struct {
	Status string `json:"status"`
}

// Persona is the system prompt and tone of a chatbot
type Persona struct {
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Tone         string `json:"tone,omitempty"`
	SystemPrompt string `json:"system_prompt"`
	Language     string `json:"language,omitempty"`
}

// Plan is a subscription plan offered by the platform
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency,omitempty"`
	DurationDays int     `json:"duration_days"`
	MaxUsers     int     `json:"max_users,omitempty"`
	Credits      int     `json:"credits,omitempty"`
}

// Subscription links a chatbot to a plan for a period
type Subscription struct {
	ID        string    `json:"id,omitempty"`
	ChatbotID string    `json:"chatbot_id"`
	PlanID    string    `json:"plan_id"`
	PlanName  string    `json:"plan_name,omitempty"`
	Status    string    `json:"status,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// DaysLeft returns whole days until the subscription ends, never negative.
func (s *Subscription) DaysLeft(now time.Time) int {
	if s == nil || s.EndDate.IsZero() || !s.EndDate.After(now) {
		return 0
	}
	return int(s.EndDate.Sub(now).Hours() / 24)
}
