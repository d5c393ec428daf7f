package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/actorctx"
	"github.com/reachway/reachway/internal/analytics/domain"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/internal/providers/llm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const topCampaignCount = 5

// Analyst is the slice of the LLM client insight generation needs.
type Analyst interface {
	Insights(ctx context.Context, statsJSON string) (string, error)
}

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Repo         domain.Repository
	ProspectRepo prospectdomain.Repository
	AuthSvc      authdomain.Service
	LLM          *llm.Client
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	prospectRepo prospectdomain.Repository
	authSvc      authdomain.Service
	llm          Analyst
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("analytics.service"),
		repo:         p.Repo,
		prospectRepo: p.ProspectRepo,
		authSvc:      p.AuthSvc,
		llm:          p.LLM,
	}
}

func (s *Service) Report(ctx context.Context, actor actorctx.Actor) (domain.Report, error) {
	if actor.CanViewAllProspects() {
		return s.companyReport(ctx, actor)
	}
	return s.ownReport(ctx, actor)
}

// ownReport covers only the rep's assigned prospects and own sent messages.
func (s *Service) ownReport(ctx context.Context, actor actorctx.Actor) (domain.Report, error) {
	overview, err := s.overview(ctx, actor.CompanyID, &actor.UserID)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{Role: actor.Role, Overview: overview}, nil
}

func (s *Service) companyReport(ctx context.Context, actor actorctx.Actor) (domain.Report, error) {
	report := domain.Report{Role: actor.Role}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview, err := s.overview(gctx, actor.CompanyID, nil)
		if err == nil {
			report.Overview = overview
		}
		return err
	})
	g.Go(func() error {
		stats, err := s.campaignStats(gctx, actor.CompanyID)
		if err == nil {
			report.CampaignPerformance = stats
		}
		return err
	})
	g.Go(func() error {
		stats, err := s.teamStats(gctx, actor.CompanyID)
		if err == nil {
			report.TeamPerformance = stats
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Report{}, err
	}

	report.TopCampaigns = topCampaigns(report.CampaignPerformance)
	return report, nil
}

// overview fans the independent count queries out; they have no ordering
// dependency. A non-nil ownedBy narrows prospects to assigned_to and
// messages to sent_by.
func (s *Service) overview(ctx context.Context, companyID snowflake.ID, ownedBy *snowflake.ID) (domain.Overview, error) {
	var o domain.Overview
	filter := prospectdomain.ListProspectFilter{OwnedBy: ownedBy}

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, statuses []prospectdomain.Status) {
		g.Go(func() error {
			n, err := s.prospectRepo.CountByStatuses(gctx, s.db, companyID, statuses, filter)
			if err == nil {
				*dst = n
			}
			return err
		})
	}
	count(&o.TotalProspects, nil)
	count(&o.ProspectsContacted, prospectdomain.ContactedStatuses)
	count(&o.ResponsesReceived, prospectdomain.RespondedStatuses)
	count(&o.MeetingsBooked, prospectdomain.MeetingStatuses)
	count(&o.Conversions, []prospectdomain.Status{prospectdomain.StatusConverted})

	g.Go(func() error {
		n, err := s.repo.CountSentMessages(gctx, s.db, companyID, nil, ownedBy)
		if err == nil {
			o.MessagesSent = n
		}
		return err
	})

	if ownedBy == nil {
		g.Go(func() error {
			headers, err := s.repo.ListCampaignHeaders(gctx, s.db, companyID)
			if err != nil {
				return err
			}
			o.TotalCampaigns = int64(len(headers))
			for _, h := range headers {
				if h.Status == campaigndomain.StatusActive {
					o.ActiveCampaigns++
				}
			}
			return nil
		})
		g.Go(func() error {
			n, err := s.repo.DistinctEmployers(gctx, s.db, companyID)
			if err == nil {
				o.CompaniesContacted = n
			}
			return err
		})
		g.Go(func() error {
			n, err := s.repo.DistinctIndustries(gctx, s.db, companyID)
			if err == nil {
				o.IndustriesTargeted = n
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Overview{}, err
	}

	o.ResponseRate = rate(o.ResponsesReceived, o.ProspectsContacted)
	o.ConversionRate = rate(o.Conversions, o.TotalProspects)
	return o, nil
}

func (s *Service) campaignStats(ctx context.Context, companyID snowflake.ID) ([]domain.CampaignStats, error) {
	headers, err := s.repo.ListCampaignHeaders(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.CampaignStats, len(headers))
	g, gctx := errgroup.WithContext(ctx)
	for i, header := range headers {
		i, header := i, header
		g.Go(func() error {
			row, err := s.oneCampaignStats(gctx, companyID, header)
			if err == nil {
				stats[i] = row
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) oneCampaignStats(ctx context.Context, companyID snowflake.ID, header domain.CampaignHeader) (domain.CampaignStats, error) {
	filter := prospectdomain.ListProspectFilter{CampaignID: &header.ID}

	total, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, nil, filter)
	if err != nil {
		return domain.CampaignStats{}, err
	}
	contacted, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, prospectdomain.ContactedStatuses, filter)
	if err != nil {
		return domain.CampaignStats{}, err
	}
	responses, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, prospectdomain.RespondedStatuses, filter)
	if err != nil {
		return domain.CampaignStats{}, err
	}
	sent, err := s.repo.CountSentMessages(ctx, s.db, companyID, &header.ID, nil)
	if err != nil {
		return domain.CampaignStats{}, err
	}

	return domain.CampaignStats{
		ID:             header.ID,
		Name:           header.Name,
		Status:         string(header.Status),
		TotalProspects: total,
		Contacted:      contacted,
		Responses:      responses,
		MessagesSent:   sent,
		ResponseRate:   rate(responses, contacted),
	}, nil
}

func (s *Service) teamStats(ctx context.Context, companyID snowflake.ID) ([]domain.TeamMemberStats, error) {
	members, err := s.authSvc.ListTeam(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.TeamMemberStats, len(members))
	g, gctx := errgroup.WithContext(ctx)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			row, err := s.oneMemberStats(gctx, companyID, member)
			if err == nil {
				stats[i] = row
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) oneMemberStats(ctx context.Context, companyID snowflake.ID, member authdomain.User) (domain.TeamMemberStats, error) {
	filter := prospectdomain.ListProspectFilter{AssignedTo: &member.ID}

	assigned, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, nil, filter)
	if err != nil {
		return domain.TeamMemberStats{}, err
	}
	contacted, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, prospectdomain.ContactedStatuses, filter)
	if err != nil {
		return domain.TeamMemberStats{}, err
	}
	responses, err := s.prospectRepo.CountByStatuses(ctx, s.db, companyID, prospectdomain.RespondedStatuses, filter)
	if err != nil {
		return domain.TeamMemberStats{}, err
	}
	sent, err := s.repo.CountSentMessages(ctx, s.db, companyID, nil, &member.ID)
	if err != nil {
		return domain.TeamMemberStats{}, err
	}

	return domain.TeamMemberStats{
		ID:                member.ID,
		Name:              member.FullName,
		Role:              member.Role,
		ProspectsAssigned: assigned,
		MessagesSent:      sent,
		Contacted:         contacted,
		Responses:         responses,
		ResponseRate:      rate(responses, contacted),
	}, nil
}

func (s *Service) Insights(ctx context.Context, actor actorctx.Actor) (domain.Insights, error) {
	report, err := s.Report(ctx, actor)
	if err != nil {
		return domain.Insights{}, err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return domain.Insights{}, err
	}

	text, err := s.llm.Insights(ctx, string(payload))
	if err != nil {
		return domain.Insights{}, err
	}

	return domain.Insights{Insights: text, GeneratedAt: time.Now().UTC()}, nil
}

func topCampaigns(stats []domain.CampaignStats) []domain.CampaignStats {
	if len(stats) == 0 {
		return nil
	}
	top := make([]domain.CampaignStats, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].ResponseRate > top[j].ResponseRate })
	if len(top) > topCampaignCount {
		top = top[:topCampaignCount]
	}
	return top
}

func rate(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
