package wabot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/menara-digital/menara/internal/model"
)

// systemInstruction is fixed for all tenants: notification copy is short,
// polite Indonesian suited to a mosque audience.
const systemInstruction = "Kamu adalah asisten masjid. Jawab dalam Bahasa Indonesia, singkat, sopan, dan menginspirasi."

// AIClient generates notification copy through the gateway's chat
// endpoint.
type AIClient struct {
	httpClient *http.Client
}

func NewAIClient() *AIClient {
	return &AIClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type chatRequest struct {
	Message           string `json:"message"`
	SystemInstruction string `json:"systemInstruction"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Generate asks the AI collaborator for message text. Callers treat every
// error as recoverable and fall back to their template.
func (c *AIClient) Generate(ctx context.Context, settings model.WabotSettings, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Message:           prompt,
		SystemInstruction: systemInstruction,
	})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(settings.APIURL, "/") + "/api/ai/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if settings.Token != "" {
		req.Header.Set("Authorization", "Bearer "+settings.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai chat returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not decode ai chat response: %w", err)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("ai chat returned an empty response")
	}
	return parsed.Response, nil
}
