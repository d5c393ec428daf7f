package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/campaign/domain"
	"github.com/reachway/reachway/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxDailyContactLimit = 500

var validTones = map[string]bool{
	"professional": true,
	"casual":       true,
	"enthusiastic": true,
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("campaign.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, companyID snowflake.ID, req domain.CreateCampaignRequest) (domain.Campaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Campaign{}, domain.ErrInvalidName
	}

	tone := strings.TrimSpace(req.AITone)
	if tone == "" {
		tone = "professional"
	}
	if !validTones[tone] {
		return domain.Campaign{}, domain.ErrInvalidTone
	}

	limit := req.DailyContactLimit
	if limit == 0 {
		limit = 50
	}
	if limit < 1 || limit > maxDailyContactLimit {
		return domain.Campaign{}, domain.ErrInvalidLimit
	}

	personalization := true
	if req.AIPersonalization != nil {
		personalization = *req.AIPersonalization
	}

	now := time.Now().UTC()
	campaign := domain.Campaign{
		ID:                s.genID.Generate(),
		CompanyID:         companyID,
		Name:              name,
		Description:       strings.TrimSpace(req.Description),
		Status:            domain.StatusDraft,
		TargetCriteria:    datatypes.NewJSONType(req.TargetCriteria),
		MessageTemplate:   req.MessageTemplate,
		AIPersonalization: personalization,
		AITone:            tone,
		DailyContactLimit: limit,
		CreatedBy:         req.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &campaign); err != nil {
		return domain.Campaign{}, err
	}

	s.log.Info("campaign created",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("company_id", companyID.String()))
	return campaign, nil
}

func (s *Service) List(ctx context.Context, companyID snowflake.ID, req domain.ListCampaignRequest) (domain.ListCampaignResponse, error) {
	filter := domain.ListCampaignFilter{}
	if status := strings.TrimSpace(req.Status); status != "" {
		st := domain.Status(status)
		if !st.Valid() {
			return domain.ListCampaignResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = st
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCampaignResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(campaign *domain.Campaign) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        campaign.ID.String(),
			CreatedAt: campaign.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	campaigns := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		campaigns = append(campaigns, *item)
	}

	resp := domain.ListCampaignResponse{Campaigns: campaigns}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, companyID, id snowflake.ID) (domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Campaign{}, err
	}
	if campaign == nil {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return *campaign, nil
}

func (s *Service) Update(ctx context.Context, companyID, id snowflake.ID, req domain.UpdateCampaignRequest) (domain.Campaign, error) {
	if _, err := s.GetByID(ctx, companyID, id); err != nil {
		return domain.Campaign{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Campaign{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.TargetCriteria != nil {
		fields["target_criteria"] = datatypes.NewJSONType(*req.TargetCriteria)
	}
	if req.MessageTemplate != nil {
		fields["message_template"] = *req.MessageTemplate
	}
	if req.AIPersonalization != nil {
		fields["ai_personalization_enabled"] = *req.AIPersonalization
	}
	if req.AITone != nil {
		tone := strings.TrimSpace(*req.AITone)
		if !validTones[tone] {
			return domain.Campaign{}, domain.ErrInvalidTone
		}
		fields["ai_tone"] = tone
	}
	if req.DailyContactLimit != nil {
		if *req.DailyContactLimit < 1 || *req.DailyContactLimit > maxDailyContactLimit {
			return domain.Campaign{}, domain.ErrInvalidLimit
		}
		fields["daily_contact_limit"] = *req.DailyContactLimit
	}

	if err := s.repo.Update(ctx, s.db, companyID, id, fields); err != nil {
		return domain.Campaign{}, err
	}
	return s.GetByID(ctx, companyID, id)
}

func (s *Service) Delete(ctx context.Context, companyID, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, companyID, id)
}

// Transition moves a campaign through its status machine. Timestamps are set
// on the first activation and on completion.
func (s *Service) Transition(ctx context.Context, companyID, id snowflake.ID, to domain.Status) (domain.Campaign, error) {
	campaign, err := s.GetByID(ctx, companyID, id)
	if err != nil {
		return domain.Campaign{}, err
	}

	if !domain.CanTransition(campaign.Status, to) {
		return domain.Campaign{}, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"status":     to,
		"updated_at": now,
	}
	if to == domain.StatusActive && campaign.StartedAt == nil {
		fields["started_at"] = now
	}
	if to == domain.StatusCompleted {
		fields["completed_at"] = now
	}

	if err := s.repo.Update(ctx, s.db, companyID, id, fields); err != nil {
		return domain.Campaign{}, err
	}

	s.log.Info("campaign status changed",
		zap.String("campaign_id", id.String()),
		zap.String("from", string(campaign.Status)),
		zap.String("to", string(to)))
	return s.GetByID(ctx, companyID, id)
}
