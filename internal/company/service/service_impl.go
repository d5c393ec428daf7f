package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/reachway/reachway/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	companySlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return domain.Company{}, err
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:                 s.genID.Generate(),
		Name:               name,
		Slug:               companySlug,
		Industry:           strings.TrimSpace(req.Industry),
		Website:            strings.TrimSpace(req.Website),
		SubscriptionTier:   domain.TierStarter,
		SubscriptionStatus: domain.SubscriptionTrial,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}

	s.log.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("slug", company.Slug))
	return company, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Company, error) {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateCompanyRequest) (domain.Company, error) {
	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Company{}, err
	}
	if existing == nil {
		return domain.Company{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Company{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Industry != nil {
		fields["industry"] = strings.TrimSpace(*req.Industry)
	}
	if req.Website != nil {
		fields["website"] = strings.TrimSpace(*req.Website)
	}
	if req.ValueProposition != nil {
		fields["value_proposition"] = strings.TrimSpace(*req.ValueProposition)
	}
	if req.SubscriptionTier != nil {
		tier := domain.SubscriptionTier(strings.TrimSpace(*req.SubscriptionTier))
		if !tier.Valid() {
			return domain.Company{}, domain.ErrInvalidTier
		}
		fields["subscription_tier"] = tier
	}

	if err := s.repo.Update(ctx, s.db, id, fields); err != nil {
		return domain.Company{}, err
	}
	return s.GetByID(ctx, id)
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		existing, err := s.repo.FindBySlug(ctx, s.db, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
