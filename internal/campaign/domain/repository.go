package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListCampaignFilter struct {
	Status Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Campaign, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListCampaignFilter, page pagination.Pagination) ([]*Campaign, error)
	Update(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error
}
