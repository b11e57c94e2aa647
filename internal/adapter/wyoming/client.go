// Package wyoming fetches upper-air soundings from the University of
// Wyoming text-product service.
package wyoming

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/couchcryptid/wxplot/internal/sounding"
)

// Client implements sounding.Provider against the Wyoming sounding CGI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an upper-air client. An empty baseURL selects the
// public service.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://weather.uwyo.edu/cgi-bin/sounding"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch retrieves the sounding for a station identifier and valid time
// (UTC, truncated to the hour by the service).
func (c *Client) Fetch(ctx context.Context, station string, t time.Time) (sounding.Profile, error) {
	t = t.UTC()
	params := url.Values{
		"region": {"naconf"},
		"TYPE":   {"TEXT:LIST"},
		"YEAR":   {t.Format("2006")},
		"MONTH":  {t.Format("01")},
		"FROM":   {t.Format("0215")},
		"TO":     {t.Format("0215")},
		"STNM":   {station},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return sounding.Profile{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sounding.Profile{}, fmt.Errorf("sounding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return sounding.Profile{}, fmt.Errorf("sounding service error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return sounding.Profile{}, fmt.Errorf("read response: %w", err)
	}

	levels, err := parseTextProduct(string(body))
	if err != nil {
		return sounding.Profile{}, fmt.Errorf("station %s at %s: %w", station, t.Format(time.RFC3339), err)
	}
	return sounding.Profile{Station: station, Time: t, Levels: levels}, nil
}

// parseTextProduct extracts the level table from the service's HTML
// response. The table lives in the first <PRE> block as fixed-width
// 7-character columns: PRES HGHT TEMP DWPT RELH MIXR DRCT SKNT THTA
// THTE THTV. Levels missing any of the first four fields are dropped;
// missing winds are kept as zero.
func parseTextProduct(body string) ([]sounding.Level, error) {
	start := strings.Index(body, "<PRE>")
	end := strings.Index(body, "</PRE>")
	if start < 0 || end < 0 || end < start {
		return nil, fmt.Errorf("no sounding table in response")
	}
	table := body[start+len("<PRE>") : end]

	var levels []sounding.Level
	for _, line := range strings.Split(table, "\n") {
		if len(strings.TrimSpace(line)) == 0 || strings.IndexFunc(line, unicode.IsLetter) >= 0 {
			// Header and unit lines carry letters; data lines never do.
			// Separator dashes fail the numeric parse below instead.
			continue
		}
		pres, okP := fixedField(line, 0)
		hght, okH := fixedField(line, 1)
		temp, okT := fixedField(line, 2)
		dwpt, okD := fixedField(line, 3)
		if !okP || !okH || !okT || !okD {
			continue
		}
		drct, _ := fixedField(line, 6)
		sknt, _ := fixedField(line, 7)
		levels = append(levels, sounding.Level{
			Pressure:    pres,
			Height:      hght,
			Temperature: temp,
			Dewpoint:    dwpt,
			WindDir:     drct,
			WindSpeed:   sknt,
		})
	}
	if len(levels) == 0 {
		return nil, sounding.ErrEmptyProfile
	}
	return levels, nil
}

// fixedField parses the i-th 7-character column of a table line.
func fixedField(line string, i int) (float64, bool) {
	lo := i * 7
	hi := lo + 7
	if lo >= len(line) {
		return 0, false
	}
	if hi > len(line) {
		hi = len(line)
	}
	s := strings.TrimSpace(line[lo:hi])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
