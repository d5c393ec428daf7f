// Package domain contains core types for the prospect service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusNew           Status = "new"
	StatusContacted     Status = "contacted"
	StatusResponded     Status = "responded"
	StatusMeetingBooked Status = "meeting_booked"
	StatusConverted     Status = "converted"
	StatusNotInterested Status = "not_interested"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusResponded, StatusMeetingBooked,
		StatusConverted, StatusNotInterested:
		return true
	default:
		return false
	}
}

// Funnel membership. Anything past "new" counts as contacted, and each later
// stage implies the earlier ones.
var (
	ContactedStatuses = []Status{StatusContacted, StatusResponded, StatusMeetingBooked, StatusConverted, StatusNotInterested}
	RespondedStatuses = []Status{StatusResponded, StatusMeetingBooked, StatusConverted}
	MeetingStatuses   = []Status{StatusMeetingBooked, StatusConverted}
)

// Prospect is a discovered person tracked through the outreach funnel.
// linkedin_url is unique per company.
type Prospect struct {
	ID                snowflake.ID  `gorm:"primaryKey" json:"id"`
	CompanyID         snowflake.ID  `gorm:"not null;index;uniqueIndex:idx_prospects_company_linkedin" json:"company_id"`
	CampaignID        *snowflake.ID `gorm:"index" json:"campaign_id,omitempty"`
	LinkedInURL       string        `gorm:"column:linkedin_url;type:text;not null;uniqueIndex:idx_prospects_company_linkedin" json:"linkedin_url"`
	ExternalContactID string        `gorm:"column:external_contact_id;type:text" json:"external_contact_id,omitempty"`
	FirstName         string        `gorm:"type:text" json:"first_name,omitempty"`
	LastName          string        `gorm:"type:text" json:"last_name,omitempty"`
	FullName          string        `gorm:"type:text;not null" json:"full_name"`
	Title             string        `gorm:"type:text" json:"title,omitempty"`
	Employer          string        `gorm:"type:text" json:"employer,omitempty"`
	Industry          string        `gorm:"type:text" json:"industry,omitempty"`
	Location          string        `gorm:"type:text" json:"location,omitempty"`
	Headline          string        `gorm:"type:text" json:"headline,omitempty"`
	PhotoURL          string        `gorm:"column:photo_url;type:text" json:"photo_url,omitempty"`
	Email             string        `gorm:"type:text" json:"email,omitempty"`
	Phone             string        `gorm:"type:text" json:"phone,omitempty"`
	Status            Status        `gorm:"type:text;not null;default:'new';index" json:"status"`
	AssignedTo        *snowflake.ID `gorm:"index" json:"assigned_to,omitempty"`
	Notes             string        `gorm:"type:text" json:"notes,omitempty"`
	LastContactedAt   *time.Time    `json:"last_contacted_at,omitempty"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Prospect) TableName() string { return "prospects" }
