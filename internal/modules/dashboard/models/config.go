package models

// Feature names a per-chatbot configuration section. Each has an admin view,
// a public view and an update route.
type Feature string

const (
	FeatureUI         Feature = "ui"
	FeatureSidebar    Feature = "sidebar"
	FeatureAuth       Feature = "auth"
	FeatureIntent     Feature = "intent"
	FeatureTranscript Feature = "transcript"
	FeatureZoho       Feature = "zoho"
)

var Features = []Feature{FeatureUI, FeatureSidebar, FeatureAuth, FeatureIntent, FeatureTranscript, FeatureZoho}

func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// UIConfig is the branding of the chat widget
type UIConfig struct {
	AvatarURL         string   `json:"avatar_url,omitempty"`
	BotName           string   `json:"bot_name,omitempty"`
	WelcomeText       string   `json:"welcome_text,omitempty"`
	PrimaryColor      string   `json:"primary_color,omitempty"`
	InputPlaceholders []string `json:"input_placeholders,omitempty"`
	PlaceholderSpeed  int      `json:"placeholder_speed_ms,omitempty"`
	ShowPoweredBy     bool     `json:"show_powered_by"`
}

// ChannelMode controls how a sidebar channel is surfaced
type ChannelMode string

const (
	ModeDirect ChannelMode = "direct"
	ModeForm   ChannelMode = "form"
	ModeLink   ChannelMode = "link"
)

// SidebarChannel is the toggle, text and mode of one contact channel
type SidebarChannel struct {
	Enabled bool        `json:"enabled"`
	Text    string      `json:"text,omitempty"`
	Mode    ChannelMode `json:"mode,omitempty"`
	Value   string      `json:"value,omitempty"` // number, URL or address depending on channel
	Message string      `json:"message,omitempty"`
}

// SidebarConfig holds the optional contact channels shown to end users
type SidebarConfig struct {
	Enabled  bool           `json:"enabled"`
	WhatsApp SidebarChannel `json:"whatsapp"`
	Call     SidebarChannel `json:"call"`
	Calendly SidebarChannel `json:"calendly"`
	Email    SidebarChannel `json:"email"`
}

// Auth providers supported for end-user verification
const (
	AuthProviderTwilio      = "twilio"
	AuthProviderMessageBird = "messagebird"
	AuthProviderAISensy     = "aisensy"
	AuthProviderEmailOTP    = "email_otp"
)

// AuthConfig is the end-user verification setup of a chatbot
type AuthConfig struct {
	Enabled       bool              `json:"enabled"`
	Provider      string            `json:"provider"`
	Credentials   map[string]string `json:"credentials,omitempty"`
	RequireEmail  bool              `json:"require_email"`
	RequirePhone  bool              `json:"require_phone"`
	FreeMessages  int               `json:"free_messages,omitempty"`
	OTPLength     int               `json:"otp_length,omitempty"`
	OTPExpiryMins int               `json:"otp_expiry_minutes,omitempty"`
}

// IntentConfig drives keyword-triggered proposal and lead-capture offers
type IntentConfig struct {
	Enabled            bool     `json:"enabled"`
	Keywords           []string `json:"keywords,omitempty"`
	ProposalPrompt     string   `json:"proposal_prompt,omitempty"`
	LeadCapturePrompt  string   `json:"lead_capture_prompt,omitempty"`
	ConfirmationText   string   `json:"confirmation_text,omitempty"`
	ProposalTemplateID string   `json:"proposal_template_id,omitempty"`
}

// TranscriptConfig controls conversation transcript delivery
type TranscriptConfig struct {
	Enabled    bool     `json:"enabled"`
	Channel    string   `json:"channel,omitempty"` // email, whatsapp
	Recipients []string `json:"recipients,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	Prompt     string   `json:"prompt,omitempty"`
}

// ZohoConfig is the Zoho CRM lead-capture integration
type ZohoConfig struct {
	Enabled      bool              `json:"enabled"`
	ClientID     string            `json:"client_id,omitempty"`
	ClientSecret string            `json:"client_secret,omitempty"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	Domain       string            `json:"domain,omitempty"` // zoho.com, zoho.in, zoho.eu ...
	Module       string            `json:"module,omitempty"` // Leads, Contacts
	FieldMapping map[string]string `json:"field_mapping,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
}

// ZohoExchangeRequest asks the backend to trade an authorization code for a refresh token
type ZohoExchangeRequest struct {
	Code         string `json:"code"`
	ChatbotID    string `json:"chatbot_id,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	Domain       string `json:"domain,omitempty"`
}

type ZohoExchangeResponse struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token,omitempty"`
	APIDomain    string `json:"api_domain,omitempty"`
}
