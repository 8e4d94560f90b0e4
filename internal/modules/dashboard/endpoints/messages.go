package endpoints

import (
	"context"
	"io"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
)

// ListMessages accepts page, limit, startDate, endDate, email, phone and
// sessionId; empty values are dropped before the request is sent.
func (e *Endpoints) ListMessages(ctx context.Context, chatbotID string, params map[string]any) (*apiclient.Response, error) {
	return e.client.Get(ctx, path("/chatbot/%s/messages", chatbotID), params)
}

func (e *Endpoints) ExportMessages(ctx context.Context, chatbotID string, params map[string]any) (*apiclient.Response, error) {
	return e.client.GetBlob(ctx, path("/chatbot/%s/messages/export", chatbotID), params)
}

// DownloadReport returns the PDF report rendered by the backend
func (e *Endpoints) DownloadReport(ctx context.Context, chatbotID string, params map[string]any) (*apiclient.Response, error) {
	return e.client.GetBlob(ctx, path("/chatbot/%s/report", chatbotID), params)
}

// UploadFile sends a knowledge file as multipart form data with fields
// "file" and "chatbotId".
func (e *Endpoints) UploadFile(ctx context.Context, chatbotID, filename string, file io.Reader) (*apiclient.Response, error) {
	return e.client.Upload(ctx, "/upload", "file", filename, file, map[string]string{"chatbotId": chatbotID})
}
