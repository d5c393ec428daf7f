// Package domain contains core types for the campaign service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted:
		return true
	default:
		return false
	}
}

// TargetCriteria is the discovery filter stored on a campaign.
type TargetCriteria struct {
	Titles     []string `json:"titles,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Campaign is an outreach campaign. Status only changes through the
// transition operations, never through a plain update.
type Campaign struct {
	ID                snowflake.ID                       `gorm:"primaryKey" json:"id"`
	CompanyID         snowflake.ID                       `gorm:"not null;index" json:"company_id"`
	Name              string                             `gorm:"not null" json:"name"`
	Description       string                             `gorm:"type:text" json:"description,omitempty"`
	Status            Status                             `gorm:"type:text;not null;default:'draft'" json:"status"`
	TargetCriteria    datatypes.JSONType[TargetCriteria] `gorm:"column:target_criteria" json:"target_criteria"`
	MessageTemplate   string                             `gorm:"type:text" json:"message_template,omitempty"`
	AIPersonalization bool                               `gorm:"column:ai_personalization_enabled;not null;default:true" json:"ai_personalization_enabled"`
	AITone            string                             `gorm:"column:ai_tone;type:text;not null;default:'professional'" json:"ai_tone"`
	DailyContactLimit int                                `gorm:"not null;default:50" json:"daily_contact_limit"`
	CreatedBy         snowflake.ID                       `gorm:"not null" json:"created_by"`
	StartedAt         *time.Time                         `json:"started_at,omitempty"`
	CompletedAt       *time.Time                         `json:"completed_at,omitempty"`
	CreatedAt         time.Time                          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time                          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }

// CanTransition reports whether a campaign may move from one status to
// another. Completed is terminal. Start doubles as resume from paused.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusActive:
		return from == StatusDraft || from == StatusPaused
	case StatusPaused:
		return from == StatusActive
	case StatusCompleted:
		return from == StatusActive || from == StatusPaused
	default:
		return false
	}
}
