package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	"gorm.io/gorm"
)

// CampaignHeader is the slice of a campaign the report needs.
type CampaignHeader struct {
	ID     snowflake.ID
	Name   string
	Status campaigndomain.Status
}

type Repository interface {
	ListCampaignHeaders(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]CampaignHeader, error)
	// CountSentMessages counts messages with sent_at set, optionally narrowed
	// to one campaign or one sender.
	CountSentMessages(ctx context.Context, db *gorm.DB, companyID snowflake.ID, campaignID, sentBy *snowflake.ID) (int64, error)
	// DistinctEmployers and DistinctIndustries count distinct non-empty
	// values across the company's prospects.
	DistinctEmployers(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (int64, error)
	DistinctIndustries(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (int64, error)
}
