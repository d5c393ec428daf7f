package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	"github.com/reachway/reachway/internal/discovery"
	"github.com/reachway/reachway/pkg/db/pagination"
)

type createCampaignRequest struct {
	Name              string                        `json:"name"`
	Description       string                        `json:"description"`
	TargetCriteria    campaigndomain.TargetCriteria `json:"target_criteria"`
	MessageTemplate   string                        `json:"message_template"`
	AIPersonalization *bool                         `json:"ai_personalization_enabled"`
	AITone            string                        `json:"ai_tone"`
	DailyContactLimit int                           `json:"daily_contact_limit"`
}

type updateCampaignRequest struct {
	Name              *string                        `json:"name"`
	Description       *string                        `json:"description"`
	TargetCriteria    *campaigndomain.TargetCriteria `json:"target_criteria"`
	MessageTemplate   *string                        `json:"message_template"`
	AIPersonalization *bool                          `json:"ai_personalization_enabled"`
	AITone            *string                        `json:"ai_tone"`
	DailyContactLimit *int                           `json:"daily_contact_limit"`
}

func (s *Server) CreateCampaign(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.Create(c.Request.Context(), actor.CompanyID, campaigndomain.CreateCampaignRequest{
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		TargetCriteria:    req.TargetCriteria,
		MessageTemplate:   req.MessageTemplate,
		AIPersonalization: req.AIPersonalization,
		AITone:            strings.TrimSpace(req.AITone),
		DailyContactLimit: req.DailyContactLimit,
		CreatedBy:         actor.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, resp)
}

func (s *Server) ListCampaigns(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.List(c.Request.Context(), actor.CompanyID, campaigndomain.ListCampaignRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) GetCampaignByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.campaignSvc.GetByID(c.Request.Context(), actor.CompanyID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) UpdateCampaign(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campaignSvc.Update(c.Request.Context(), actor.CompanyID, id, campaigndomain.UpdateCampaignRequest{
		Name:              req.Name,
		Description:       req.Description,
		TargetCriteria:    req.TargetCriteria,
		MessageTemplate:   req.MessageTemplate,
		AIPersonalization: req.AIPersonalization,
		AITone:            req.AITone,
		DailyContactLimit: req.DailyContactLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) DeleteCampaign(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.campaignSvc.Delete(c.Request.Context(), actor.CompanyID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) StartCampaign(c *gin.Context) {
	s.transitionCampaign(c, campaigndomain.StatusActive)
}

func (s *Server) PauseCampaign(c *gin.Context) {
	s.transitionCampaign(c, campaigndomain.StatusPaused)
}

func (s *Server) ResumeCampaign(c *gin.Context) {
	s.transitionCampaign(c, campaigndomain.StatusActive)
}

func (s *Server) CompleteCampaign(c *gin.Context) {
	s.transitionCampaign(c, campaigndomain.StatusCompleted)
}

func (s *Server) transitionCampaign(c *gin.Context, to campaigndomain.Status) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.campaignSvc.Transition(c.Request.Context(), actor.CompanyID, id, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

type discoverProspectsRequest struct {
	Limit       int  `json:"limit"`
	EnrichLimit *int `json:"enrich_limit"`
}

// Enrichment is billed per revealed contact, so an absent enrich_limit
// caps the spend instead of revealing every result.
const defaultEnrichLimit = 10

// DiscoverProspects runs the search/enrich pipeline for an active
// campaign's target criteria. Results are returned as candidates, not
// saved; add-prospects persists the ones the caller keeps.
func (s *Server) DiscoverProspects(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Body is optional; an empty body means defaults.
	var req discoverProspectsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, invalidRequestError())
		return
	}

	campaign, err := s.campaignSvc.GetByID(c.Request.Context(), actor.CompanyID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if campaign.Status != campaigndomain.StatusActive {
		AbortWithError(c, newValidationError("status", "campaign_not_active", "campaign must be active"))
		return
	}

	enrichLimit := defaultEnrichLimit
	if req.EnrichLimit != nil {
		enrichLimit = *req.EnrichLimit
	}

	criteria := campaign.TargetCriteria.Data()
	candidates, err := s.discoverySvc.Discover(c.Request.Context(), discovery.Criteria{
		Titles:     criteria.Titles,
		Industries: criteria.Industries,
		Locations:  criteria.Locations,
		Keywords:   criteria.Keywords,
	}, req.Limit, enrichLimit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"campaign_id": campaign.ID,
		"prospects":   candidates,
	})
}

type addProspectsRequest struct {
	Prospects []discovery.Candidate `json:"prospects"`
}

func (s *Server) AddProspects(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req addProspectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Prospects) == 0 {
		AbortWithError(c, newValidationError("prospects", "required", "prospects are required"))
		return
	}

	result, err := s.prospectSvc.BulkAdd(c.Request.Context(), actor, id, req.Prospects)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, result)
}
