package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	"github.com/reachway/reachway/internal/permission"
)

type createTeamMemberRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	FullName           string `json:"full_name"`
	Role               string `json:"role"`
	LinkedInProfileURL string `json:"linkedin_profile_url"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) ListTeam(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	members, err := s.authsvc.ListTeam(c.Request.Context(), actor.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, members)
}

func (s *Server) CreateTeamMember(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.CreateUser(c.Request.Context(), authdomain.CreateUserRequest{
		CompanyID:          actor.CompanyID,
		Email:              strings.TrimSpace(req.Email),
		Password:           req.Password,
		FullName:           strings.TrimSpace(req.FullName),
		Role:               permission.Role(strings.TrimSpace(req.Role)),
		LinkedInProfileURL: strings.TrimSpace(req.LinkedInProfileURL),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, user)
}

func (s *Server) UpdateTeamMemberRole(c *gin.Context) {
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

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.UpdateRole(c.Request.Context(), actor.CompanyID, id, permission.Role(strings.TrimSpace(req.Role)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}
