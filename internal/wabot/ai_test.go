package wabot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIClient_Generate(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/chat", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"response": "Mari sholat berjamaah."})
	}))
	defer server.Close()

	client := NewAIClient()
	reply, err := client.Generate(context.Background(), gatewaySettings(server.URL), "Tulis pengingat Dzuhur")
	require.NoError(t, err)

	assert.Equal(t, "Mari sholat berjamaah.", reply)
	assert.Equal(t, "Tulis pengingat Dzuhur", gotBody["message"])
	assert.NotEmpty(t, gotBody["systemInstruction"])
}

func TestAIClient_EmptyResponseIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "  "})
	}))
	defer server.Close()

	client := NewAIClient()
	_, err := client.Generate(context.Background(), gatewaySettings(server.URL), "prompt")
	assert.Error(t, err)
}
