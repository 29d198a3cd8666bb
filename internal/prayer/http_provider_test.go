package prayer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timingsFixture = `{
  "code": 200,
  "data": {
    "timings": {
      "Imsak": "04:28 (WIB)",
      "Fajr": "04:38 (WIB)",
      "Sunrise": "05:53 (WIB)",
      "Dhuhr": "12:02 (WIB)",
      "Asr": "15:14 (WIB)",
      "Maghrib": "18:05 (WIB)",
      "Isha": "19:14 (WIB)"
    }
  }
}`

func TestHTTPProvider_ParsesTimingsResponse(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(timingsFixture))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	times, err := provider.TimesFor(context.Background(), -6.2, 106.8, "kemenag", date, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "/v1/timings/10-03-2026", gotPath)
	assert.Equal(t, []string{"kemenag"}, gotQuery["method"])
	assert.Equal(t, []string{"UTC"}, gotQuery["timezonestring"])

	// Zone suffixes are stripped and clocks anchored to the request day.
	assert.Equal(t, time.Date(2026, 3, 10, 4, 38, 0, 0, time.UTC), times.Subuh)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 2, 0, 0, time.UTC), times.Dzuhur)
	assert.Equal(t, time.Date(2026, 3, 10, 19, 14, 0, 0, time.UTC), times.Isya)
}

func TestHTTPProvider_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	_, err := provider.TimesFor(context.Background(), -6.2, 106.8, "kemenag", time.Now(), time.UTC)
	assert.Error(t, err)
}

func TestHTTPProvider_MissingTimingIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"timings":{"Fajr":"04:38"}}}`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	_, err := provider.TimesFor(context.Background(), -6.2, 106.8, "kemenag", time.Now(), time.UTC)
	assert.Error(t, err)
}
