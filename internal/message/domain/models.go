// Package domain contains core types for the message service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Message is an outreach draft or sent message. sent_at null means draft.
// Sending is manual bookkeeping; no transport is attached.
type Message struct {
	ID         snowflake.ID                `gorm:"primaryKey" json:"id"`
	CompanyID  snowflake.ID                `gorm:"not null;index" json:"company_id"`
	ProspectID snowflake.ID                `gorm:"not null;index" json:"prospect_id"`
	CampaignID *snowflake.ID               `gorm:"index" json:"campaign_id,omitempty"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	Subject    string                      `gorm:"type:text" json:"subject,omitempty"`
	Variations datatypes.JSONSlice[string] `gorm:"column:variations" json:"variations,omitempty"`
	SentAt     *time.Time                  `json:"sent_at,omitempty"`
	SentBy     *snowflake.ID               `json:"sent_by,omitempty"`
	CreatedAt  time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

// Draft reports whether the message has not been sent yet.
func (m Message) Draft() bool { return m.SentAt == nil }
