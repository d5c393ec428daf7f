package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAnalytics reports role-scoped funnel numbers; reps see only their
// own prospects and sends.
func (s *Server) GetAnalytics(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	report, err := s.analyticsSvc.Report(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, report)
}

func (s *Server) GetAnalyticsInsights(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	insights, err := s.analyticsSvc.Insights(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, insights)
}
