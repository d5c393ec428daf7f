package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/message/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, message *domain.Message) error {
	return db.WithContext(ctx).Create(message).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.Message, error) {
	var message domain.Message
	err := db.WithContext(ctx).
		First(&message, "company_id = ? AND id = ?", companyID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *repo) ListByProspect(ctx context.Context, db *gorm.DB, companyID, prospectID snowflake.ID) ([]domain.Message, error) {
	var messages []domain.Message
	err := db.WithContext(ctx).
		Where("company_id = ? AND prospect_id = ?", companyID, prospectID).
		Order("created_at desc, id desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
}

func (r *repo) CountSent(ctx context.Context, db *gorm.DB, companyID snowflake.ID, sentBy *snowflake.ID) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("company_id = ? AND sent_at IS NOT NULL", companyID)
	if sentBy != nil {
		stmt = stmt.Where("sent_by = ?", *sentBy)
	}
	err := stmt.Count(&count).Error
	return count, err
}
