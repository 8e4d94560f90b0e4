package models

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one chat message from an end-user session (read-only here)
type Message struct {
	ID        string    `json:"id,omitempty"`
	ChatbotID string    `json:"chatbot_id,omitempty"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Name      string    `json:"name,omitempty"`
}

// MessagePage is one page of message history
type MessagePage struct {
	Messages   []Message `json:"messages"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
