package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/providers/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ScraperConfig{
		BaseURL: srv.URL,
		APIKey:  "scrape-key",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestScrapeProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scrape-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "https://linkedin.com/in/ada", r.URL.Query().Get("url"))
		assert.Equal(t, "profile", r.URL.Query().Get("field"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"firstName": "Ada",
			"lastName":  "Quinn",
			"headline":  "VP of Sales at Initech | SaaS",
			"location":  "Austin, Texas",
			"about":     "20 years in enterprise sales.",
		})
	}))

	profile, err := client.ScrapeProfile(context.Background(), "https://linkedin.com/in/ada")
	require.NoError(t, err)

	assert.Equal(t, "Ada Quinn", profile.FullName)
	assert.Equal(t, "VP of Sales", profile.Title, "title recovered from headline")
	assert.Equal(t, "Initech", profile.Company, "company recovered from headline")
	assert.Equal(t, "https://linkedin.com/in/ada", profile.ProfileURL)
	assert.Equal(t, "20 years in enterprise sales.", profile.Summary)
}

func TestScrapeProfileDirectFieldsWin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"fullName": "Bo Reyes",
			"title":    "CTO",
			"company":  "Globex",
			"headline": "Engineering leader at SomewhereElse",
		})
	}))

	profile, err := client.ScrapeProfile(context.Background(), "https://linkedin.com/in/bo")
	require.NoError(t, err)
	assert.Equal(t, "CTO", profile.Title)
	assert.Equal(t, "Globex", profile.Company)
}

func TestScrapeProfileUpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.ScrapeProfile(context.Background(), "https://linkedin.com/in/x")
	var provErr *upstream.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "scraper", provErr.Provider)
	assert.Equal(t, http.StatusForbidden, provErr.Status)
}

func TestHeadlineParsing(t *testing.T) {
	assert.Equal(t, "Acme Corp", companyFromHeadline("Head of Growth at Acme Corp | B2B"))
	assert.Equal(t, "Acme Corp", companyFromHeadline("Head of Growth at Acme Corp"))
	assert.Equal(t, "", companyFromHeadline("Growth leader and advisor"))

	assert.Equal(t, "Head of Growth", titleFromHeadline("Head of Growth at Acme Corp"))
	assert.Equal(t, "Growth leader and advisor", titleFromHeadline("Growth leader and advisor"))
}
