package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/permission"
)

type CreateUserRequest struct {
	CompanyID          snowflake.ID
	Email              string
	Password           string
	FullName           string
	Role               permission.Role
	LinkedInProfileURL string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the raw session token exactly once, for the cookie.
type LoginResult struct {
	User      User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate resolves a raw cookie token into the session's user.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	GetUser(ctx context.Context, companyID, id snowflake.ID) (*User, error)
	ListTeam(ctx context.Context, companyID snowflake.ID) ([]User, error)
	UpdateRole(ctx context.Context, companyID, id snowflake.ID, role permission.Role) (*User, error)
}
