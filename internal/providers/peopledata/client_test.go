package peopledata

import (
	"context"
	"encoding/json"
	"fmt"
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

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.PeopleDataConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		BatchSize:  10,
		BatchDelay: 0,
	}, zap.NewNop())
	return client, srv
}

func TestSearchPeopleBuildsRequest(t *testing.T) {
	var captured map[string]any
	var apiKey string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mixed_people/search", r.URL.Path)
		apiKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"people": []map[string]any{
			{"id": "p1", "name": "Ada Quinn", "title": "VP Sales"},
		}})
	}))

	people, err := client.SearchPeople(context.Background(), SearchQuery{
		Titles:     []string{"VP Sales"},
		Industries: []string{"software"},
		Locations:  []string{"Richmond, VA", "Austin, Texas, US", "Toronto, USA"},
		Keywords:   []string{"b2b", "saas"},
		Limit:      150,
	})
	require.NoError(t, err)
	require.Len(t, people, 1)

	assert.Equal(t, "test-key", apiKey)
	assert.EqualValues(t, 100, captured["per_page"], "limit capped")
	assert.EqualValues(t, 1, captured["page"])
	assert.Equal(t, []any{"VP Sales"}, captured["person_titles"])
	assert.Equal(t, []any{"software"}, captured["q_organization_keyword_tags"])
	assert.Equal(t, "b2b saas", captured["q_keywords"])
	assert.Equal(t, []any{
		"Richmond, Virginia, US",
		"Austin, Texas, US",
		"Toronto, US",
	}, captured["person_locations"])
}

func TestSearchPeopleDefaultLimit(t *testing.T) {
	var captured map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"people": []any{}})
	}))

	_, err := client.SearchPeople(context.Background(), SearchQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 50, captured["per_page"])
}

func TestSearchPeopleUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid person_titles"})
	}))

	_, err := client.SearchPeople(context.Background(), SearchQuery{Titles: []string{"x"}})
	require.Error(t, err)

	var provErr *upstream.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "peopledata", provErr.Provider)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.Status)
	assert.Equal(t, "invalid person_titles", provErr.Message)
}

func TestBulkEnrichBatchesSequentially(t *testing.T) {
	var batches [][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/bulk_match", r.URL.Path)
		var body struct {
			RevealPersonalEmails bool `json:"reveal_personal_emails"`
			Details              []struct {
				ID string `json:"id"`
			} `json:"details"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.RevealPersonalEmails)

		ids := make([]string, 0, len(body.Details))
		matches := make([]map[string]any, 0, len(body.Details))
		for _, d := range body.Details {
			ids = append(ids, d.ID)
			matches = append(matches, map[string]any{"id": d.ID, "email": d.ID + "@example.com"})
		}
		batches = append(batches, ids)
		_ = json.NewEncoder(w).Encode(map[string]any{"matches": matches})
	}))

	ids := make([]string, 25)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%02d", i)
	}

	enriched, err := client.BulkEnrich(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, enriched, 25)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 10)
	assert.Len(t, batches[2], 5)
	assert.Equal(t, "id-00", batches[0][0])
	assert.Equal(t, "id-24", batches[2][4])
}

func TestBulkEnrichFailedBatchIsSkipped(t *testing.T) {
	call := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body struct {
			Details []struct {
				ID string `json:"id"`
			} `json:"details"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		matches := make([]map[string]any, 0, len(body.Details))
		for _, d := range body.Details {
			matches = append(matches, map[string]any{"id": d.ID})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"matches": matches})
	}))

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%02d", i)
	}

	enriched, err := client.BulkEnrich(context.Background(), ids)
	require.NoError(t, err, "a failed batch must not fail the run")
	assert.Len(t, enriched, 20, "first and third batches survive")
	assert.Equal(t, 3, call)
}

func TestBulkEnrichEmptyInput(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	enriched, err := client.BulkEnrich(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, enriched)
}

func TestNormalizeLocation(t *testing.T) {
	cases := map[string]string{
		"Richmond, VA":          "Richmond, Virginia, US",
		"VA":                    "Virginia, US",
		"Austin, TX":            "Austin, Texas, US",
		"Austin, Texas, US":     "Austin, Texas, US",
		"Berlin, Germany":       "Berlin, Germany, US",
		"Seattle, USA":          "Seattle, US",
		"New York, NY":          "New York, New York, US",
		"San Francisco, CA, US": "San Francisco, CA, US",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeLocation(in), in)
	}
}

func TestPersonBestEmail(t *testing.T) {
	p := Person{Email: "real@corp.com", PersonalEmails: []string{"alt@gmail.com"}}
	email, ok := p.BestEmail()
	require.True(t, ok)
	assert.Equal(t, "real@corp.com", email, "direct field wins")

	p = Person{Email: "email_not_unlocked@domain.com", PersonalEmails: []string{"alt@gmail.com"}}
	email, ok = p.BestEmail()
	require.True(t, ok)
	assert.Equal(t, "alt@gmail.com", email, "placeholder falls back to personal")

	p = Person{Email: "email_not_unlocked@domain.com"}
	_, ok = p.BestEmail()
	assert.False(t, ok)

	_, ok = Person{}.BestEmail()
	assert.False(t, ok)
}

func TestPersonBestPhone(t *testing.T) {
	p := Person{Phone: "+1 555 0100"}
	phone, ok := p.BestPhone()
	require.True(t, ok)
	assert.Equal(t, "+1 555 0100", phone)

	p = Person{PhoneNumbers: []PhoneNumber{{RawNumber: "+1 555 0101", SanitizedNumber: "+15550101"}}}
	phone, ok = p.BestPhone()
	require.True(t, ok)
	assert.Equal(t, "+1 555 0101", phone)

	p = Person{PhoneNumbers: []PhoneNumber{{SanitizedNumber: "+15550102"}}}
	phone, ok = p.BestPhone()
	require.True(t, ok)
	assert.Equal(t, "+15550102", phone)

	p = Person{Organization: &Organization{PrimaryPhone: &PrimaryPhone{Number: "+1 555 0103"}}}
	phone, ok = p.BestPhone()
	require.True(t, ok)
	assert.Equal(t, "+1 555 0103", phone)

	_, ok = Person{Organization: &Organization{}}.BestPhone()
	assert.False(t, ok)
}
