package wabot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menara-digital/menara/internal/model"
)

func gatewaySettings(url string) model.WabotSettings {
	return model.WabotSettings{
		Enabled:   true,
		APIURL:    url,
		SessionID: "mosque-session",
		Target:    "628123456789@g.us",
		Token:     "secret-token",
	}
}

func TestClient_SendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	err := client.SendText(context.Background(), gatewaySettings(server.URL), "Waktu Dzuhur telah tiba")
	require.NoError(t, err)

	assert.Equal(t, "/api/messages/send", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "mosque-session", gotBody["sessionId"])
	assert.Equal(t, "628123456789@g.us", gotBody["to"])
	assert.Equal(t, "TEXT", gotBody["type"])
	assert.Equal(t, "Waktu Dzuhur telah tiba", gotBody["content"])
}

func TestClient_SendTextGatewayErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient()
	err := client.SendText(context.Background(), gatewaySettings(server.URL), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "session expired")
}

func TestClient_SendTextRequiresAPIURL(t *testing.T) {
	client := NewClient()
	err := client.SendText(context.Background(), model.WabotSettings{}, "hi")
	assert.Error(t, err)
}
