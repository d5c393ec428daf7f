package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/actorctx"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	"github.com/reachway/reachway/internal/discovery"
	"github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/pkg/db"
	"github.com/reachway/reachway/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CampaignSvc campaigndomain.Service
	AuthSvc     authdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	campaignSvc campaigndomain.Service
	authSvc     authdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("prospect.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		campaignSvc: p.CampaignSvc,
		authSvc:     p.AuthSvc,
	}
}

func (s *Service) Create(ctx context.Context, actor actorctx.Actor, req domain.CreateProspectRequest) (domain.Prospect, error) {
	linkedinURL := strings.TrimSpace(req.LinkedInURL)
	if linkedinURL == "" {
		return domain.Prospect{}, domain.ErrInvalidURL
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
	}
	if fullName == "" {
		return domain.Prospect{}, domain.ErrInvalidName
	}

	if req.CampaignID != nil {
		if err := s.checkCampaign(ctx, actor.CompanyID, *req.CampaignID); err != nil {
			return domain.Prospect{}, err
		}
	}

	now := time.Now().UTC()
	prospect := domain.Prospect{
		ID:          s.genID.Generate(),
		CompanyID:   actor.CompanyID,
		CampaignID:  req.CampaignID,
		LinkedInURL: linkedinURL,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		FullName:    fullName,
		Title:       strings.TrimSpace(req.Title),
		Employer:    strings.TrimSpace(req.Employer),
		Industry:    strings.TrimSpace(req.Industry),
		Location:    strings.TrimSpace(req.Location),
		Headline:    strings.TrimSpace(req.Headline),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Status:      domain.StatusNew,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &prospect); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Prospect{}, domain.ErrDuplicate
		}
		return domain.Prospect{}, err
	}
	return prospect, nil
}

func (s *Service) List(ctx context.Context, actor actorctx.Actor, req domain.ListProspectRequest) (domain.ListProspectResponse, error) {
	filter := domain.ListProspectFilter{
		CampaignID: req.CampaignID,
		AssignedTo: req.AssignedTo,
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		st := domain.Status(status)
		if !st.Valid() {
			return domain.ListProspectResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = st
	}
	// Reps only ever see their own assignments.
	if !actor.CanViewAllProspects() {
		owned := actor.UserID
		filter.OwnedBy = &owned
		filter.AssignedTo = nil
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, actor.CompanyID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListProspectResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(prospect *domain.Prospect) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        prospect.ID.String(),
			CreatedAt: prospect.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	prospects := make([]domain.Prospect, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		prospects = append(prospects, *item)
	}

	resp := domain.ListProspectResponse{Prospects: prospects}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (domain.Prospect, error) {
	prospect, err := s.repo.FindByID(ctx, s.db, actor.CompanyID, id)
	if err != nil {
		return domain.Prospect{}, err
	}
	if prospect == nil {
		return domain.Prospect{}, domain.ErrNotFound
	}
	// A rep can only see prospects assigned to them.
	if !actor.CanViewAllProspects() {
		if prospect.AssignedTo == nil || *prospect.AssignedTo != actor.UserID {
			return domain.Prospect{}, domain.ErrNotFound
		}
	}
	return *prospect, nil
}

func (s *Service) Update(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req domain.UpdateProspectRequest) (domain.Prospect, error) {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return domain.Prospect{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Status != nil {
		st := domain.Status(strings.TrimSpace(*req.Status))
		if !st.Valid() {
			return domain.Prospect{}, domain.ErrInvalidStatus
		}
		fields["status"] = st
		if st == domain.StatusContacted {
			fields["last_contacted_at"] = time.Now().UTC()
		}
	}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Employer != nil {
		fields["employer"] = strings.TrimSpace(*req.Employer)
	}
	if req.Industry != nil {
		fields["industry"] = strings.TrimSpace(*req.Industry)
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if err := s.repo.Update(ctx, s.db, actor.CompanyID, id, fields); err != nil {
		return domain.Prospect{}, err
	}
	return s.GetByID(ctx, actor, id)
}

func (s *Service) Delete(ctx context.Context, actor actorctx.Actor, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, actor.CompanyID, id)
}

func (s *Service) Assign(ctx context.Context, actor actorctx.Actor, id, userID snowflake.ID) (domain.Prospect, error) {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return domain.Prospect{}, err
	}

	// The assignee must belong to the same company.
	if _, err := s.authSvc.GetUser(ctx, actor.CompanyID, userID); err != nil {
		return domain.Prospect{}, domain.ErrInvalidAssignee
	}

	fields := map[string]any{
		"assigned_to": userID,
		"updated_at":  time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, s.db, actor.CompanyID, id, fields); err != nil {
		return domain.Prospect{}, err
	}

	s.log.Info("prospect assigned",
		zap.String("prospect_id", id.String()),
		zap.String("assigned_to", userID.String()))
	return s.GetByID(ctx, actor, id)
}

func (s *Service) BulkAdd(ctx context.Context, actor actorctx.Actor, campaignID snowflake.ID, candidates []discovery.Candidate) (domain.BulkAddResult, error) {
	if err := s.checkCampaign(ctx, actor.CompanyID, campaignID); err != nil {
		return domain.BulkAddResult{}, err
	}

	now := time.Now().UTC()
	prospects := make([]*domain.Prospect, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate.ProfileURL) == "" {
			continue
		}
		cid := campaignID
		prospects = append(prospects, &domain.Prospect{
			ID:                s.genID.Generate(),
			CompanyID:         actor.CompanyID,
			CampaignID:        &cid,
			LinkedInURL:       strings.TrimSpace(candidate.ProfileURL),
			ExternalContactID: candidate.ExternalID,
			FirstName:         candidate.FirstName,
			LastName:          candidate.LastName,
			FullName:          candidate.Name,
			Title:             candidate.Title,
			Employer:          candidate.Company,
			Industry:          candidate.Industry,
			Location:          candidate.Location,
			Headline:          candidate.Headline,
			PhotoURL:          candidate.PhotoURL,
			Email:             candidate.Email,
			Phone:             candidate.Phone,
			Status:            domain.StatusNew,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	if err := s.repo.InsertBatch(ctx, s.db, prospects); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.BulkAddResult{}, domain.ErrDuplicate
		}
		return domain.BulkAddResult{}, err
	}

	added := make([]domain.Prospect, 0, len(prospects))
	for _, p := range prospects {
		added = append(added, *p)
	}

	s.log.Info("prospects added",
		zap.String("campaign_id", campaignID.String()),
		zap.Int("count", len(added)))
	return domain.BulkAddResult{Added: added, CampaignID: campaignID}, nil
}

func (s *Service) MarkContacted(ctx context.Context, companyID, id snowflake.ID) error {
	prospect, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if prospect == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"last_contacted_at": now,
		"updated_at":        now,
	}
	// Do not regress prospects that already moved past contacted.
	if prospect.Status == domain.StatusNew {
		fields["status"] = domain.StatusContacted
	}
	return s.repo.Update(ctx, s.db, companyID, id, fields)
}

func (s *Service) checkCampaign(ctx context.Context, companyID, campaignID snowflake.ID) error {
	if _, err := s.campaignSvc.GetByID(ctx, companyID, campaignID); err != nil {
		return domain.ErrInvalidCampaign
	}
	return nil
}
