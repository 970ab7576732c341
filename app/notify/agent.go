package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var _ Agent = (*TextitAgent)(nil)

// TextitAgent posts a message to the Textit SMS gateway. The gateway
// takes a single form-encoded request per message with a
// comma-separated recipient list, and reports success as an HTTP 200
// whose body starts with "OK".
type TextitAgent struct {
	id       string
	password string
	endpoint string
	client   *http.Client
}

func NewTextitAgent(id, password, endpoint string) *TextitAgent {
	return &TextitAgent{
		id:       id,
		password: password,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (a *TextitAgent) Send(ctx context.Context, message string, recipients []string) (bool, error) {
	form := url.Values{}
	form.Set("id", a.id)
	form.Set("pw", a.password)
	form.Set("to", strings.Join(recipients, ","))
	form.Set("text", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read gateway response: %w", err)
	}

	status := strings.SplitN(string(body), ":", 2)[0]
	slog.Info("Gateway call completed", "endpoint", a.endpoint, "http_status", resp.StatusCode, "gateway_status", status)

	return resp.StatusCode == http.StatusOK && status == "OK", nil
}
