package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListProspectFilter narrows a company-scoped listing. OwnedBy restricts to
// rows assigned to that user and is how rep "own scope" is enforced.
type ListProspectFilter struct {
	CampaignID *snowflake.ID
	Status     Status
	AssignedTo *snowflake.ID
	OwnedBy    *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, prospect *Prospect) error
	InsertBatch(ctx context.Context, db *gorm.DB, prospects []*Prospect) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Prospect, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListProspectFilter, page pagination.Pagination) ([]*Prospect, error)
	Update(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error
	CountByStatuses(ctx context.Context, db *gorm.DB, companyID snowflake.ID, statuses []Status, filter ListProspectFilter) (int64, error)
}
