package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, prospect *domain.Prospect) error {
	return db.WithContext(ctx).Create(prospect).Error
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, prospects []*domain.Prospect) error {
	if len(prospects) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(prospects).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.Prospect, error) {
	var prospect domain.Prospect
	err := db.WithContext(ctx).
		First(&prospect, "company_id = ? AND id = ?", companyID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prospect, nil
}

func applyFilter(stmt *gorm.DB, filter domain.ListProspectFilter) *gorm.DB {
	if filter.CampaignID != nil {
		stmt = stmt.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != nil {
		stmt = stmt.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.OwnedBy != nil {
		stmt = stmt.Where("assigned_to = ?", *filter.OwnedBy)
	}
	return stmt
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter domain.ListProspectFilter, page pagination.Pagination) ([]*domain.Prospect, error) {
	var prospects []*domain.Prospect
	stmt := db.WithContext(ctx).
		Model(&domain.Prospect{}).
		Where("company_id = ?", companyID)
	stmt = applyFilter(stmt, filter)
	stmt = pagination.Apply(page)(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&prospects).Error
	if err != nil {
		return nil, err
	}
	return prospects, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Prospect{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.Prospect{}).Error
}

func (r *repo) CountByStatuses(ctx context.Context, db *gorm.DB, companyID snowflake.ID, statuses []domain.Status, filter domain.ListProspectFilter) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Prospect{}).
		Where("company_id = ?", companyID)
	if len(statuses) > 0 {
		stmt = stmt.Where("status IN ?", statuses)
	}
	stmt = applyFilter(stmt, filter)
	err := stmt.Count(&count).Error
	return count, err
}
