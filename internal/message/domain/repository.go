package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, message *Message) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Message, error)
	ListByProspect(ctx context.Context, db *gorm.DB, companyID, prospectID snowflake.ID) ([]Message, error)
	Update(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	CountSent(ctx context.Context, db *gorm.DB, companyID snowflake.ID, sentBy *snowflake.ID) (int64, error)
}
