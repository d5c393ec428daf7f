// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/permission"
)

// User is a member of a company.
type User struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	CompanyID          snowflake.ID    `gorm:"not null;index" json:"company_id"`
	Email              string          `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash       string          `gorm:"type:text;not null" json:"-"`
	FullName           string          `gorm:"type:text;not null" json:"full_name"`
	Role               permission.Role `gorm:"type:text;not null" json:"role"`
	LinkedInProfileURL string          `gorm:"column:linkedin_profile_url;type:text" json:"linkedin_profile_url,omitempty"`
	CreatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Session is a persisted login session. Only the sha256 of the raw token is
// stored; the raw value lives in the client cookie.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Session) TableName() string { return "sessions" }
