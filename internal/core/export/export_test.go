package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func msg(sender, content string) models.Message {
	return models.Message{Sender: sender, Content: content, SessionID: "s1"}
}

func TestPairConversationAlternating(t *testing.T) {
	for n := 0; n <= 5; n++ {
		var messages []models.Message
		for i := 0; i < n; i++ {
			messages = append(messages, msg(models.SenderUser, "q"), msg(models.SenderBot, "a"))
		}
		assert.Len(t, PairConversation(messages), n)
	}
}

func TestPairConversationSkipsOneAtATime(t *testing.T) {
	messages := []models.Message{
		msg(models.SenderBot, "welcome"),
		msg(models.SenderUser, "hi"),
		msg(models.SenderUser, "hello?"),
		msg(models.SenderBot, "hello!"),
		msg(models.SenderBot, "anything else?"),
		msg(models.SenderUser, "pricing"),
		msg(models.SenderBot, "see plans"),
		msg(models.SenderUser, "dangling"),
	}

	turns := PairConversation(messages)
	require.Len(t, turns, 2)
	assert.Equal(t, "hello?", turns[0].User.Content)
	assert.Equal(t, "hello!", turns[0].Bot.Content)
	assert.Equal(t, "pricing", turns[1].User.Content)
	assert.Equal(t, "see plans", turns[1].Bot.Content)
}

func TestPairConversationEdgeCases(t *testing.T) {
	assert.Empty(t, PairConversation(nil))
	assert.Empty(t, PairConversation([]models.Message{msg(models.SenderUser, "q")}))
	assert.Empty(t, PairConversation([]models.Message{msg(models.SenderBot, "a"), msg(models.SenderUser, "q")}))
	assert.Empty(t, PairConversation([]models.Message{{Sender: "system"}, {Sender: "agent"}}))
}

func TestIsGuestUser(t *testing.T) {
	tests := []struct {
		name string
		m    models.Message
		want bool
	}{
		{"session only", models.Message{SessionID: "abc"}, true},
		{"session and email", models.Message{SessionID: "abc", Email: "a@b.com"}, false},
		{"session and phone", models.Message{SessionID: "abc", Phone: "+911234"}, false},
		{"empty", models.Message{}, false},
		{"email only", models.Message{Email: "a@b.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGuestUser(tt.m))
		})
	}
	assert.Equal(t, UserTypeGuest, UserType(models.Message{SessionID: "abc"}))
	assert.Equal(t, UserTypeRegistered, UserType(models.Message{Email: "a@b.com"}))
}

func sampleTable() *Table {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	turns := PairConversation([]models.Message{
		{Sender: models.SenderUser, Content: "What are your hours?", SessionID: "s1", Timestamp: ts},
		{Sender: models.SenderBot, Content: "9 to 5", SessionID: "s1", Timestamp: ts.Add(time.Second)},
		{Sender: models.SenderUser, Content: "Call me", SessionID: "s2", Email: "a@b.com", Phone: "+91", Timestamp: ts},
		{Sender: models.SenderBot, Content: "Sure", SessionID: "s2", Timestamp: ts},
	})
	return ConversationTable("Chat history", turns)
}

func TestCSVExportIsLiteralQuotedFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(sampleTable(), &buf))

	want := strings.Join([]string{
		`"Session ID","User Type","Email","Phone","User Message","Bot Reply","Timestamp"`,
		`"s1","Guest","","","What are your hours?","9 to 5","2024-03-01 10:30:00"`,
		`"s2","Registered","a@b.com","+91","Call me","Sure","2024-03-01 10:30:00"`,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestCSVDoesNotEscapeEmbeddedQuotes(t *testing.T) {
	table := &Table{Headers: []string{"a"}, Rows: [][]any{{`say "hi"`}}}
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(table, &buf))
	assert.Equal(t, "\"a\"\n\"say \"hi\"\"", buf.String())
}

func TestExcelExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Export(sampleTable(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Messages")
	require.NoError(t, err)
	// title, blank, header, two data rows
	require.Len(t, rows, 5)
	assert.Equal(t, "Chat history", rows[0][0])
	assert.Equal(t, ConversationHeaders, rows[2])
	assert.Equal(t, "9 to 5", rows[3][5])
	assert.Equal(t, "Registered", rows[4][1])
}

func TestPDFExport(t *testing.T) {
	table := sampleTable()
	table.GeneratedAt = time.Now()
	for i := 0; i < 80; i++ {
		table.Rows = append(table.Rows, []any{"s", "Guest", "", "", strings.Repeat("long question ", 10), strings.Repeat("long answer ", 30), time.Now()})
	}

	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter().Export(table, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	assert.Error(t, NewPDFExporter().Export(&Table{}, &buf))
}

func TestServiceDispatch(t *testing.T) {
	s := NewService()

	data, contentType, err := s.Export(sampleTable(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv;charset=utf-8", contentType)
	assert.True(t, strings.HasPrefix(string(data), `"Session ID"`))

	_, _, err = s.Export(sampleTable(), Format("docx"))
	assert.Error(t, err)

	assert.Equal(t, ".xlsx", s.FileExtension(FormatExcel))
	assert.Equal(t, ".bin", s.FileExtension(Format("docx")))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "CSV": FormatCSV, "excel": FormatExcel, "xlsx": FormatExcel, "pdf": FormatPDF} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}
