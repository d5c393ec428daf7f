package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	companydomain "github.com/reachway/reachway/internal/company/domain"
)

type updateCompanyRequest struct {
	Name             *string `json:"name"`
	Industry         *string `json:"industry"`
	Website          *string `json:"website"`
	ValueProposition *string `json:"value_proposition"`
	SubscriptionTier *string `json:"subscription_tier"`
}

func (s *Server) GetCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.companySvc.GetByID(c.Request.Context(), actor.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), actor.CompanyID, companydomain.UpdateCompanyRequest{
		Name:             req.Name,
		Industry:         req.Industry,
		Website:          req.Website,
		ValueProposition: req.ValueProposition,
		SubscriptionTier: req.SubscriptionTier,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}
