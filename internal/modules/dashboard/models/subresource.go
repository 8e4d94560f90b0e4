package models

// Kind of nested, chatbot-scoped collection
type SubResourceKind string

const (
	KindEmailTemplates    SubResourceKind = "email-templates"
	KindWhatsAppProposals SubResourceKind = "whatsapp-proposals"
	KindSocialLinks       SubResourceKind = "social-links"
	KindCustomNavItems    SubResourceKind = "custom-nav-items"
)

var SubResourceKinds = []SubResourceKind{KindEmailTemplates, KindWhatsAppProposals, KindSocialLinks, KindCustomNavItems}

func (k SubResourceKind) Valid() bool {
	for _, known := range SubResourceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// EmailTemplate is a lead-capture email sent on intent match
type EmailTemplate struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Keywords []string `json:"keywords,omitempty"`
	Enabled  bool     `json:"enabled"`
}

// WhatsAppProposal is a WhatsApp template offered as a proposal
type WhatsAppProposal struct {
	ID           string   `json:"id,omitempty"`
	DisplayName  string   `json:"display_name"`
	TemplateName string   `json:"template_name"`
	Language     string   `json:"language,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Parameters   []string `json:"parameters,omitempty"`
	Enabled      bool     `json:"enabled"`
}

// SocialLink is a social profile shown in the sidebar
type SocialLink struct {
	ID       string `json:"id,omitempty"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Order    int    `json:"order"`
	Enabled  bool   `json:"enabled"`
}

// CustomNavItem is an extra navigation entry in the sidebar
type CustomNavItem struct {
	ID           string `json:"id,omitempty"`
	Label        string `json:"label"`
	URL          string `json:"url"`
	Icon         string `json:"icon,omitempty"`
	Order        int    `json:"order"`
	OpenInNewTab bool   `json:"open_in_new_tab"`
	Enabled      bool   `json:"enabled"`
}
