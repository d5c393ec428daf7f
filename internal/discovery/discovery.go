// Package discovery runs the two-phase prospect discovery pipeline:
// a broad people search followed by selective contact enrichment, merged
// into one ordered candidate list.
package discovery

import (
	"context"

	"github.com/reachway/reachway/internal/providers/peopledata"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Criteria is the campaign targeting input for a discovery run.
type Criteria struct {
	Titles     []string `json:"titles,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Candidate is one discovered person, ready to be saved as a prospect.
// Contact fields are empty when enrichment did not reveal them.
type Candidate struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	ProfileURL string `json:"profile_url"`
	Headline   string `json:"headline"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// PeopleClient is the slice of the people-data API discovery needs.
type PeopleClient interface {
	SearchPeople(ctx context.Context, query peopledata.SearchQuery) ([]peopledata.Person, error)
	BulkEnrich(ctx context.Context, ids []string) ([]peopledata.Person, error)
}

// Service orchestrates search, enrichment and the merge.
type Service struct {
	people PeopleClient
	log    *zap.Logger
}

type Params struct {
	fx.In

	People *peopledata.Client
	Log    *zap.Logger
}

func NewService(p Params) *Service {
	return &Service{people: p.People, log: p.Log.Named("discovery.service")}
}

// EnrichAll requests enrichment of every search result.
const EnrichAll = -1

// Discover searches for people matching criteria, enriches up to
// enrichLimit of them (0 skips enrichment, EnrichAll enriches everything),
// and returns candidates in search order. Search failure fails the whole
// run; a failed enrichment batch only loses that batch's contact fields.
func (s *Service) Discover(ctx context.Context, criteria Criteria, limit, enrichLimit int) ([]Candidate, error) {
	found, err := s.people.SearchPeople(ctx, peopledata.SearchQuery{
		Titles:     criteria.Titles,
		Industries: criteria.Industries,
		Locations:  criteria.Locations,
		Keywords:   criteria.Keywords,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		s.log.Info("search returned no people, skipping enrichment")
		return []Candidate{}, nil
	}

	ids := make([]string, 0, len(found))
	for _, p := range found {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	if enrichLimit == EnrichAll || enrichLimit > len(ids) {
		enrichLimit = len(ids)
	}

	enriched := map[string]peopledata.Person{}
	if enrichLimit > 0 && len(ids) > 0 {
		revealed, err := s.people.BulkEnrich(ctx, ids[:enrichLimit])
		if err != nil {
			return nil, err
		}
		for _, p := range revealed {
			enriched[p.ID] = p
		}
	}

	candidates := make([]Candidate, 0, len(found))
	for _, p := range found {
		if full, ok := enriched[p.ID]; ok {
			p = full
		}
		candidates = append(candidates, toCandidate(p))
	}

	s.log.Info("discovery completed",
		zap.Int("found", len(found)),
		zap.Int("enriched", len(enriched)))
	return candidates, nil
}

func toCandidate(p peopledata.Person) Candidate {
	c := Candidate{
		ExternalID: p.ID,
		Name:       p.DisplayName(),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Title:      p.Title,
		Company:    p.EmployerName(),
		Location:   p.Location(),
		ProfileURL: p.LinkedinURL,
		Headline:   p.Headline,
		PhotoURL:   p.PhotoURL,
		Industry:   p.IndustryName(),
	}
	if c.Headline == "" {
		c.Headline = p.Title
	}
	if email, ok := p.BestEmail(); ok {
		c.Email = email
	}
	if phone, ok := p.BestPhone(); ok {
		c.Phone = phone
	}
	return c
}
