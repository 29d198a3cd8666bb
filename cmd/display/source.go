package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/worker"
)

// httpConfigSource polls the server's display API for this device's
// mosque config. A 401 maps to worker.ErrDeviceDeauthorized so the loop
// can drop its snapshot and fall back to pairing mode.
type httpConfigSource struct {
	baseURL  string
	deviceID string
	client   *http.Client
}

func newHTTPConfigSource(baseURL, deviceID string) *httpConfigSource {
	return &httpConfigSource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		deviceID: deviceID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *httpConfigSource) FetchConfig(ctx context.Context) (*model.MosqueConfig, error) {
	endpoint := s.baseURL + "/api/display/config?device_id=" + url.QueryEscape(s.deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, worker.ErrDeviceDeauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("config fetch returned %d: %s", resp.StatusCode, body)
	}

	var cfg model.MosqueConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode mosque config: %w", err)
	}
	return &cfg, nil
}

// registerPairingCode announces an unpaired device to the server so an
// admin can claim the code shown on screen.
func (s *httpConfigSource) registerPairingCode(ctx context.Context, code string) error {
	payload, err := json.Marshal(map[string]string{
		"code":      code,
		"device_id": s.deviceID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/display/register", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pairing registration returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
