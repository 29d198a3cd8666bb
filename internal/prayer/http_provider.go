package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPProvider fetches civil times from an Aladhan-compatible timings API.
type HTTPProvider struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type timingsResponse struct {
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// TimesFor requests the timetable for one calendar day. The API returns
// wall-clock "HH:MM" strings which are anchored to the requested date in
// the mosque's timezone.
func (p *HTTPProvider) TimesFor(ctx context.Context, lat, lng float64, method string, date time.Time, loc *time.Location) (*Times, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("method", method)
	q.Set("timezonestring", loc.String())

	endpoint := fmt.Sprintf("%s/v1/timings/%s?%s", p.BaseURL, date.Format("02-01-2006"), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timings request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timings API returned status %d", resp.StatusCode)
	}

	var parsed timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not decode timings response: %w", err)
	}

	at := func(name string) (time.Time, error) {
		return clockOnDate(parsed.Data.Timings[name], date, loc)
	}

	var t Times
	fields := []struct {
		key string
		dst *time.Time
	}{
		{"Imsak", &t.Imsak},
		{"Fajr", &t.Subuh},
		{"Sunrise", &t.Syuruq},
		{"Dhuhr", &t.Dzuhur},
		{"Asr", &t.Ashar},
		{"Maghrib", &t.Maghrib},
		{"Isha", &t.Isya},
	}
	for _, f := range fields {
		instant, err := at(f.key)
		if err != nil {
			return nil, fmt.Errorf("timing %s: %w", f.key, err)
		}
		*f.dst = instant
	}
	return &t, nil
}

// clockOnDate anchors an "HH:MM" string (optionally suffixed with a zone
// label, e.g. "05:01 (WIB)") to a calendar day in loc.
func clockOnDate(clock string, date time.Time, loc *time.Location) (time.Time, error) {
	if i := strings.IndexByte(clock, ' '); i > 0 {
		clock = clock[:i]
	}
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
