package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/analytics/domain"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	messagedomain "github.com/reachway/reachway/internal/message/domain"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCampaignHeaders(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]domain.CampaignHeader, error) {
	var headers []domain.CampaignHeader
	err := db.WithContext(ctx).
		Model(&campaigndomain.Campaign{}).
		Select("id", "name", "status").
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&headers).Error
	if err != nil {
		return nil, err
	}
	return headers, nil
}

func (r *repo) CountSentMessages(ctx context.Context, db *gorm.DB, companyID snowflake.ID, campaignID, sentBy *snowflake.ID) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&messagedomain.Message{}).
		Where("company_id = ? AND sent_at IS NOT NULL", companyID)
	if campaignID != nil {
		stmt = stmt.Where("campaign_id = ?", *campaignID)
	}
	if sentBy != nil {
		stmt = stmt.Where("sent_by = ?", *sentBy)
	}
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) DistinctEmployers(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (int64, error) {
	return r.distinctColumn(ctx, db, companyID, "employer")
}

func (r *repo) DistinctIndustries(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (int64, error) {
	return r.distinctColumn(ctx, db, companyID, "industry")
}

func (r *repo) distinctColumn(ctx context.Context, db *gorm.DB, companyID snowflake.ID, column string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&prospectdomain.Prospect{}).
		Distinct(column).
		Where("company_id = ? AND "+column+" <> ''", companyID).
		Count(&count).Error
	return count, err
}
