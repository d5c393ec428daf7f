// Package domain contains core types for the company service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type SubscriptionTier string

const (
	TierStarter      SubscriptionTier = "starter"
	TierProfessional SubscriptionTier = "professional"
	TierEnterprise   SubscriptionTier = "enterprise"
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierStarter, TierProfessional, TierEnterprise:
		return true
	default:
		return false
	}
}

type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// Company is the tenancy unit. Every campaign, prospect and message row is
// scoped to one company.
type Company struct {
	ID                 snowflake.ID       `gorm:"primaryKey" json:"id"`
	Name               string             `gorm:"not null" json:"name"`
	Slug               string             `gorm:"not null;uniqueIndex" json:"slug"`
	Industry           string             `gorm:"type:text" json:"industry,omitempty"`
	Website            string             `gorm:"type:text" json:"website,omitempty"`
	ValueProposition   string             `gorm:"type:text" json:"value_proposition,omitempty"`
	SubscriptionTier   SubscriptionTier   `gorm:"type:text;not null;default:'starter'" json:"subscription_tier"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:text;not null;default:'trial'" json:"subscription_status"`
	CreatedAt          time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
