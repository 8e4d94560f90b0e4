package models

import "time"

// Company represents a tenant owning one or more chatbots
type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Email         string    `json:"email"`
	ManagedByName string    `json:"managed_by_name,omitempty"`
	Status        string    `json:"status,omitempty"`
	ChatbotCount  int       `json:"chatbot_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCompanyRequest is the body of the company creation call.
// The password is only sent, never read back.
type CreateCompanyRequest struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ManagedByName string `json:"managed_by_name,omitempty"`
}

// UpdateCompanyRequest carries the editable company fields
type UpdateCompanyRequest struct {
	Name          string `json:"name,omitempty"`
	URL           string `json:"url,omitempty"`
	Email         string `json:"email,omitempty"`
	Password      string `json:"password,omitempty"`
	ManagedByName string `json:"managed_by_name,omitempty"`
}
