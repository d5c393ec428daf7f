package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	messagedomain "github.com/reachway/reachway/internal/message/domain"
)

type updateMessageRequest struct {
	Content    *string  `json:"content"`
	Subject    *string  `json:"subject"`
	Variations []string `json:"variations"`
}

// GenerateMessage drafts a new message for the prospect. Each call keeps
// the previous drafts around.
func (s *Server) GenerateMessage(c *gin.Context) {
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

	resp, err := s.messageSvc.Generate(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, resp)
}

func (s *Server) ListProspectMessages(c *gin.Context) {
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

	resp, err := s.messageSvc.ListForProspect(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) UpdateMessage(c *gin.Context) {
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

	var req updateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.messageSvc.Update(c.Request.Context(), actor, id, messagedomain.UpdateMessageRequest{
		Content:    req.Content,
		Subject:    req.Subject,
		Variations: req.Variations,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) SendMessage(c *gin.Context) {
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

	resp, err := s.messageSvc.Send(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}
