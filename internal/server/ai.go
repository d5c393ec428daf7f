package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reachway/reachway/internal/providers/llm"
)

type improveMessageRequest struct {
	Message string `json:"message"`
}

type messageVariationsRequest struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type scrapeProfileRequest struct {
	LinkedInURL string `json:"linkedin_url"`
}

func (s *Server) ImproveMessage(c *gin.Context) {
	var req improveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	original := strings.TrimSpace(req.Message)
	if original == "" {
		AbortWithError(c, newValidationError("message", "required", "message is required"))
		return
	}

	improved, err := s.llm.Improve(c.Request.Context(), original)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"original": original,
		"improved": improved,
	})
}

func (s *Server) MessageVariations(c *gin.Context) {
	var req messageVariationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	base := strings.TrimSpace(req.Message)
	if base == "" {
		AbortWithError(c, newValidationError("message", "required", "message is required"))
		return
	}
	count := req.Count
	if count <= 0 {
		count = llm.DefaultVariationCount
	}

	variations, err := s.llm.Variations(c.Request.Context(), base, count)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"variations": variations})
}

func (s *Server) ScrapeLinkedInProfile(c *gin.Context) {
	var req scrapeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	profileURL := strings.TrimSpace(req.LinkedInURL)
	if profileURL == "" {
		AbortWithError(c, newValidationError("linkedin_url", "required", "linkedin_url is required"))
		return
	}

	profile, err := s.scraper.ScrapeProfile(c.Request.Context(), profileURL)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, profile)
}
