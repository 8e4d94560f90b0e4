package export

import (
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

const TimestampLayout = "2006-01-02 15:04:05"

// Column headers of the conversation export
var ConversationHeaders = []string{"Session ID", "User Type", "Email", "Phone", "User Message", "Bot Reply", "Timestamp"}

const (
	UserTypeGuest      = "Guest"
	UserTypeRegistered = "Registered"
)

// Turn is one user message and the bot reply that immediately follows it
type Turn struct {
	User models.Message
	Bot  models.Message
}

// PairConversation scans messages in order. A user message directly
// followed by a bot message becomes a turn and both are consumed; any other
// message is skipped on its own and scanning resumes at the next one.
func PairConversation(messages []models.Message) []Turn {
	turns := make([]Turn, 0, len(messages)/2)
	for i := 0; i < len(messages); {
		if i+1 < len(messages) && messages[i].Sender == models.SenderUser && messages[i+1].Sender == models.SenderBot {
			turns = append(turns, Turn{User: messages[i], Bot: messages[i+1]})
			i += 2
			continue
		}
		i++
	}
	return turns
}

// IsGuestUser reports whether the message came from an anonymous session:
// no email, no phone, but a session id.
func IsGuestUser(m models.Message) bool {
	return m.Email == "" && m.Phone == "" && m.SessionID != ""
}

func UserType(m models.Message) string {
	if IsGuestUser(m) {
		return UserTypeGuest
	}
	return UserTypeRegistered
}

// ConversationTable lays turns out under ConversationHeaders
func ConversationTable(title string, turns []Turn) *Table {
	style := DefaultStyle()
	style.ColumnWidths = map[int]float64{0: 24, 1: 12, 2: 26, 3: 16, 4: 48, 5: 60, 6: 20}
	style.WrapColumns = map[int]bool{4: true, 5: true}

	rows := make([][]any, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, []any{
			t.User.SessionID,
			UserType(t.User),
			t.User.Email,
			t.User.Phone,
			t.User.Content,
			t.Bot.Content,
			t.User.Timestamp,
		})
	}
	return &Table{
		Title:   title,
		Headers: ConversationHeaders,
		Rows:    rows,
		Style:   style,
	}
}
