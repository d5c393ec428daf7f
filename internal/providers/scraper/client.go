// Package scraper fetches public LinkedIn profile data through a scraping
// proxy API.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/providers/upstream"
	"go.uber.org/zap"
)

// Profile is a scraped LinkedIn profile.
type Profile struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Headline   string `json:"headline,omitempty"`
	Location   string `json:"location,omitempty"`
	Company    string `json:"company,omitempty"`
	Title      string `json:"title,omitempty"`
	Industry   string `json:"industry,omitempty"`
	ProfileURL string `json:"profile_url"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// Client talks to the profile scraping API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.ScraperConfig, log *zap.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		log:     log.Named("scraper"),
	}
}

type profileResponse struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	Headline       string `json:"headline"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Company        string `json:"company"`
	Industry       string `json:"industry"`
	PhotoURL       string `json:"photoUrl"`
	ProfilePicture string `json:"profilePicture"`
	Summary        string `json:"summary"`
	About          string `json:"about"`
}

// ScrapeProfile fetches one profile. When the response omits title or
// company they are recovered from the "Title at Company" headline pattern.
func (c *Client) ScrapeProfile(ctx context.Context, profileURL string) (Profile, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("url", profileURL)
	params.Set("field", "profile")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Profile{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, &upstream.Error{Provider: "scraper", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, &upstream.Error{Provider: "scraper", Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Profile{}, &upstream.Error{
			Provider: "scraper",
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var data profileResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return Profile{}, &upstream.Error{Provider: "scraper", Status: resp.StatusCode, Message: "malformed profile payload"}
	}

	fullName := data.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(data.FirstName + " " + data.LastName)
	}
	headline := data.Headline
	if headline == "" {
		headline = data.Title
	}
	title := data.Title
	if title == "" {
		title = titleFromHeadline(data.Headline)
	}
	company := data.Company
	if company == "" {
		company = companyFromHeadline(data.Headline)
	}
	photo := data.PhotoURL
	if photo == "" {
		photo = data.ProfilePicture
	}
	summary := data.Summary
	if summary == "" {
		summary = data.About
	}

	return Profile{
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		FullName:   fullName,
		Headline:   headline,
		Location:   data.Location,
		Company:    company,
		Title:      title,
		Industry:   data.Industry,
		ProfileURL: profileURL,
		PhotoURL:   photo,
		Summary:    summary,
	}, nil
}

// Headlines commonly read "Title at Company | extras".
var (
	companyPattern = regexp.MustCompile(`(?i)\s+at\s+(.+?)(?:\s+\||$)`)
	titlePattern   = regexp.MustCompile(`(?i)^(.+?)\s+at\s+`)
)

func companyFromHeadline(headline string) string {
	if m := companyPattern.FindStringSubmatch(headline); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func titleFromHeadline(headline string) string {
	if m := titlePattern.FindStringSubmatch(headline); m != nil {
		return strings.TrimSpace(m[1])
	}
	return headline
}
