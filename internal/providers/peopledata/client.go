// Package peopledata wraps the people-database search and enrichment API.
// Discovery is a two-phase flow: search returns ids and basic info with
// locked contact fields, bulk enrichment reveals emails and phones for a
// subset of those ids.
package peopledata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/providers/upstream"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// SearchQuery carries campaign targeting criteria into the search call.
type SearchQuery struct {
	Titles     []string
	Industries []string
	Locations  []string
	Keywords   []string
	Limit      int
}

// Client talks to the people-database HTTP API.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	batchSize  int
	batchDelay time.Duration
	log        *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.PeopleDataConfig, log *zap.Logger) *Client {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		batchSize:  batchSize,
		batchDelay: cfg.BatchDelay,
		log:        log.Named("peopledata"),
	}
}

type searchRequest struct {
	PerPage         int      `json:"per_page"`
	Page            int      `json:"page"`
	PersonTitles    []string `json:"person_titles,omitempty"`
	PersonLocations []string `json:"person_locations,omitempty"`
	OrgKeywordTags  []string `json:"q_organization_keyword_tags,omitempty"`
	Keywords        string   `json:"q_keywords,omitempty"`
}

type searchResponse struct {
	People []Person `json:"people"`
}

// SearchPeople runs the free search phase. Results carry ids and basic
// profile data but locked contact fields.
func (c *Client) SearchPeople(ctx context.Context, query SearchQuery) ([]Person, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	req := searchRequest{
		PerPage:         limit,
		Page:            1,
		PersonTitles:    query.Titles,
		PersonLocations: normalizeLocations(query.Locations),
		OrgKeywordTags:  query.Industries,
	}
	if len(query.Keywords) > 0 {
		req.Keywords = strings.Join(query.Keywords, " ")
	}

	var resp searchResponse
	if err := c.post(ctx, "/mixed_people/search", req, &resp); err != nil {
		return nil, err
	}

	c.log.Info("people search completed",
		zap.Int("requested", limit),
		zap.Int("found", len(resp.People)))
	return resp.People, nil
}

type enrichDetail struct {
	ID string `json:"id"`
}

type enrichRequest struct {
	RevealPersonalEmails bool           `json:"reveal_personal_emails"`
	Details              []enrichDetail `json:"details"`
}

type enrichResponse struct {
	Matches []Person `json:"matches"`
}

// BulkEnrich reveals contact details for the given person ids. Ids are sent
// in sequential batches with a pause between them. A failed batch is logged
// and skipped so the remaining batches still run; only context cancellation
// aborts the whole operation.
func (c *Client) BulkEnrich(ctx context.Context, ids []string) ([]Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	runID := uuid.NewString()
	enriched := make([]Person, 0, len(ids))

	for start := 0; start < len(ids); start += c.batchSize {
		end := start + c.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		req := enrichRequest{RevealPersonalEmails: true, Details: make([]enrichDetail, 0, len(batch))}
		for _, id := range batch {
			req.Details = append(req.Details, enrichDetail{ID: id})
		}

		var resp enrichResponse
		if err := c.post(ctx, "/people/bulk_match", req, &resp); err != nil {
			if ctx.Err() != nil {
				return enriched, ctx.Err()
			}
			c.log.Warn("enrichment batch failed, skipping",
				zap.String("run_id", runID),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
		} else {
			for _, match := range resp.Matches {
				if match.ID != "" {
					enriched = append(enriched, match)
				}
			}
		}

		if end < len(ids) && c.batchDelay > 0 {
			timer := time.NewTimer(c.batchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return enriched, ctx.Err()
			case <-timer.C:
			}
		}
	}

	c.log.Info("bulk enrichment completed",
		zap.String("run_id", runID),
		zap.Int("requested", len(ids)),
		zap.Int("enriched", len(enriched)))
	return enriched, nil
}

type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &upstream.Error{Provider: "peopledata", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &upstream.Error{Provider: "peopledata", Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiErrorBody
		msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if json.Unmarshal(raw, &apiErr) == nil {
			if apiErr.Error != "" {
				msg = apiErr.Error
			} else if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		return &upstream.Error{Provider: "peopledata", Status: resp.StatusCode, Message: msg}
	}

	return json.Unmarshal(raw, out)
}
