package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/pkg/db/pagination"
)

type createProspectRequest struct {
	CampaignID  string `json:"campaign_id"`
	LinkedInURL string `json:"linkedin_url"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Title       string `json:"title"`
	Employer    string `json:"employer"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Headline    string `json:"headline"`
	PhotoURL    string `json:"photo_url"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

type updateProspectRequest struct {
	Status   *string `json:"status"`
	Title    *string `json:"title"`
	Employer *string `json:"employer"`
	Industry *string `json:"industry"`
	Location *string `json:"location"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
}

type assignProspectRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) CreateProspect(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	campaignID, err := parseOptionalID(req.CampaignID)
	if err != nil {
		AbortWithError(c, newValidationError("campaign_id", "invalid_campaign_id", "invalid campaign_id"))
		return
	}

	resp, err := s.prospectSvc.Create(c.Request.Context(), actor, prospectdomain.CreateProspectRequest{
		CampaignID:  campaignID,
		LinkedInURL: strings.TrimSpace(req.LinkedInURL),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		FullName:    strings.TrimSpace(req.FullName),
		Title:       strings.TrimSpace(req.Title),
		Employer:    strings.TrimSpace(req.Employer),
		Industry:    strings.TrimSpace(req.Industry),
		Location:    strings.TrimSpace(req.Location),
		Headline:    strings.TrimSpace(req.Headline),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, resp)
}

func (s *Server) ListProspects(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Pagination
		CampaignID string `form:"campaign_id"`
		Status     string `form:"status"`
		AssignedTo string `form:"assigned_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	campaignID, err := parseOptionalID(query.CampaignID)
	if err != nil {
		AbortWithError(c, newValidationError("campaign_id", "invalid_campaign_id", "invalid campaign_id"))
		return
	}
	assignedTo, err := parseOptionalID(query.AssignedTo)
	if err != nil {
		AbortWithError(c, newValidationError("assigned_to", "invalid_assigned_to", "invalid assigned_to"))
		return
	}

	resp, err := s.prospectSvc.List(c.Request.Context(), actor, prospectdomain.ListProspectRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		CampaignID: campaignID,
		Status:     strings.TrimSpace(query.Status),
		AssignedTo: assignedTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) GetProspectByID(c *gin.Context) {
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

	resp, err := s.prospectSvc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) UpdateProspect(c *gin.Context) {
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

	var req updateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.prospectSvc.Update(c.Request.Context(), actor, id, prospectdomain.UpdateProspectRequest{
		Status:   req.Status,
		Title:    req.Title,
		Employer: req.Employer,
		Industry: req.Industry,
		Location: req.Location,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) DeleteProspect(c *gin.Context) {
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

	if err := s.prospectSvc.Delete(c.Request.Context(), actor, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) AssignProspect(c *gin.Context) {
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

	var req assignProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := parseOptionalID(req.UserID)
	if err != nil || userID == nil {
		AbortWithError(c, newValidationError("user_id", "required", "user_id is required"))
		return
	}

	resp, err := s.prospectSvc.Assign(c.Request.Context(), actor, id, *userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}
