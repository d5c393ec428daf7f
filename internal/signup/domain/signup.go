// Package domain contains types for the signup flow.
package domain

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/reachway/reachway/internal/auth/domain"
	companydomain "github.com/reachway/reachway/internal/company/domain"
)

// Request bootstraps a new company with its first admin user.
type Request struct {
	CompanyName     string
	CompanyIndustry string
	CompanyWebsite  string
	FullName        string
	Email           string
	Password        string
	UserAgent       string
	IPAddress       string
}

type Result struct {
	Company   companydomain.Company
	User      authdomain.User
	RawToken  string
	ExpiresAt time.Time
}

type Service interface {
	Signup(ctx context.Context, req Request) (*Result, error)
}

var ErrInvalidRequest = errors.New("invalid_request")
