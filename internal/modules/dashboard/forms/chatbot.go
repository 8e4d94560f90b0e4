package forms

import (
	"net/url"
	"strings"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

const (
	MinPlaceholders = 3
	MaxPlaceholders = 10
)

// ChatbotForm creates a chatbot under a company
type ChatbotForm struct {
	Name      string `validate:"required"`
	CompanyID string `validate:"required"`
	PlanID    string
	Months    int `validate:"omitempty,min=1,max=36"`
}

func (f *ChatbotForm) Validate() error {
	return join(check(f))
}

func (f *ChatbotForm) Request() models.CreateChatbotRequest {
	return models.CreateChatbotRequest{Name: f.Name, CompanyID: f.CompanyID, PlanID: f.PlanID, Months: f.Months}
}

// RenewForm extends a chatbot subscription
type RenewForm struct {
	PlanID string `validate:"required"`
	Months int    `validate:"min=1,max=36"`
}

func (f *RenewForm) Validate() error {
	return join(check(f))
}

func (f *RenewForm) Request() models.RenewChatbotRequest {
	return models.RenewChatbotRequest{PlanID: f.PlanID, Months: f.Months}
}

// Placeholders is the rotating input placeholder list of the UI config
type Placeholders struct {
	Items []string `validate:"min=3,max=10,dive,required"`
}

// NewPlaceholders trims entries and drops blank ones
func NewPlaceholders(items []string) *Placeholders {
	p := &Placeholders{}
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			p.Items = append(p.Items, s)
		}
	}
	return p
}

func (p *Placeholders) Validate() error {
	if n := len(p.Items); n < MinPlaceholders || n > MaxPlaceholders {
		return ValidationErrors{{Field: "Items", Message: "between 3 and 10 placeholders are required"}}
	}
	return join(check(p))
}

// SocialLinkForm adds a social profile link
type SocialLinkForm struct {
	Platform string
	URL      string `validate:"required,http_url"`
	Order    int    `validate:"min=0"`
}

func (f *SocialLinkForm) Validate() error {
	errs := check(f)
	if f.URL != "" && !errs.Has("URL") {
		if u, err := url.Parse(f.URL); err != nil || u.Host == "" {
			errs = append(errs, ValidationError{Field: "URL", Message: "must be a valid URL"})
		}
	}
	return join(errs)
}

// ZohoConfigForm is the Zoho integration form. It starts from the stored
// config; RefreshToken is filled by the OAuth flow and only persisted on
// explicit submission.
type ZohoConfigForm struct {
	Enabled      bool
	ClientID     string `validate:"required_if=Enabled true"`
	ClientSecret string `validate:"required_if=Enabled true"`
	Domain       string `validate:"omitempty,hostname"`
	Module       string
	RefreshToken string
	FieldMapping map[string]string
	Keywords     []string
}

// NewZohoConfigForm seeds the form with a stored config
func NewZohoConfigForm(cfg models.ZohoConfig) *ZohoConfigForm {
	return &ZohoConfigForm{
		Enabled:      cfg.Enabled,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Domain:       cfg.Domain,
		Module:       cfg.Module,
		RefreshToken: cfg.RefreshToken,
		FieldMapping: cfg.FieldMapping,
		Keywords:     cfg.Keywords,
	}
}

func (f *ZohoConfigForm) Validate() error {
	return join(check(f))
}

func (f *ZohoConfigForm) Config() models.ZohoConfig {
	return models.ZohoConfig{
		Enabled:      f.Enabled,
		ClientID:     f.ClientID,
		ClientSecret: f.ClientSecret,
		RefreshToken: f.RefreshToken,
		Domain:       f.Domain,
		Module:       f.Module,
		FieldMapping: f.FieldMapping,
		Keywords:     f.Keywords,
	}
}
