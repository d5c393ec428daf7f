package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/actorctx"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	companydomain "github.com/reachway/reachway/internal/company/domain"
	"github.com/reachway/reachway/internal/message/domain"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/internal/providers/llm"
	"github.com/reachway/reachway/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Writer is the slice of the LLM client message drafting needs.
type Writer interface {
	Generate(ctx context.Context, req llm.MessageRequest) (string, error)
	GenerateSubject(ctx context.Context, body string) (string, error)
}

// Limiter is the slice of the daily contact limiter sending needs.
type Limiter interface {
	Allow(ctx context.Context, campaignID snowflake.ID, limit int) (bool, error)
	Refund(ctx context.Context, campaignID snowflake.ID)
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProspectSvc prospectdomain.Service
	CampaignSvc campaigndomain.Service
	CompanySvc  companydomain.Service
	LLM         *llm.Client
	Limiter     *ratelimit.DailyLimiter
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	prospectSvc prospectdomain.Service
	campaignSvc campaigndomain.Service
	companySvc  companydomain.Service
	llm         Writer
	limiter     Limiter
}

func New(p Params) domain.Service {
	svc := &Service{
		db:          p.DB,
		log:         p.Log.Named("message.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		prospectSvc: p.ProspectSvc,
		campaignSvc: p.CampaignSvc,
		companySvc:  p.CompanySvc,
		llm:         p.LLM,
	}
	if p.Limiter != nil {
		svc.limiter = p.Limiter
	}
	return svc
}

func (s *Service) Generate(ctx context.Context, actor actorctx.Actor, prospectID snowflake.ID) (domain.Message, error) {
	prospect, err := s.prospectSvc.GetByID(ctx, actor, prospectID)
	if err != nil {
		return domain.Message{}, domain.ErrNotFound
	}

	var campaign *campaigndomain.Campaign
	if prospect.CampaignID != nil {
		found, err := s.campaignSvc.GetByID(ctx, actor.CompanyID, *prospect.CampaignID)
		if err == nil {
			campaign = &found
		}
	}

	company, err := s.companySvc.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return domain.Message{}, err
	}

	content, subject, err := s.draft(ctx, prospect, campaign, company)
	if err != nil {
		return domain.Message{}, err
	}

	now := time.Now().UTC()
	message := domain.Message{
		ID:         s.genID.Generate(),
		CompanyID:  actor.CompanyID,
		ProspectID: prospect.ID,
		CampaignID: prospect.CampaignID,
		Content:    content,
		Subject:    subject,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &message); err != nil {
		return domain.Message{}, err
	}

	s.log.Info("message drafted",
		zap.String("message_id", message.ID.String()),
		zap.String("prospect_id", prospect.ID.String()))
	return message, nil
}

// draft produces content and subject. With personalization off the campaign
// template is used verbatim; subject generation failure falls back to a
// deterministic subject rather than failing the draft.
func (s *Service) draft(ctx context.Context, prospect prospectdomain.Prospect, campaign *campaigndomain.Campaign, company companydomain.Company) (string, string, error) {
	template := ""
	tone := "professional"
	personalize := true
	if campaign != nil {
		template = campaign.MessageTemplate
		tone = campaign.AITone
		personalize = campaign.AIPersonalization
	}

	var content string
	if personalize {
		generated, err := s.llm.Generate(ctx, llm.MessageRequest{
			ProspectName:     prospect.FullName,
			ProspectTitle:    prospect.Title,
			ProspectCompany:  prospect.Employer,
			ProspectIndustry: prospect.Industry,
			ProspectLocation: prospect.Location,
			Template:         template,
			Tone:             tone,
			CompanyName:      company.Name,
			CompanyIndustry:  company.Industry,
			ValueProp:        company.ValueProposition,
		})
		if err != nil {
			return "", "", err
		}
		content = generated
	} else {
		content = template
	}
	if strings.TrimSpace(content) == "" {
		return "", "", domain.ErrInvalidContent
	}

	subject, err := s.llm.GenerateSubject(ctx, content)
	if err != nil || strings.TrimSpace(subject) == "" {
		subject = fallbackSubject(prospect)
	}
	return content, subject, nil
}

func fallbackSubject(prospect prospectdomain.Prospect) string {
	if prospect.Employer != "" {
		return "Question about " + prospect.Employer
	}
	return "Quick question"
}

func (s *Service) ListForProspect(ctx context.Context, actor actorctx.Actor, prospectID snowflake.ID) ([]domain.Message, error) {
	// Prospect visibility implies message visibility.
	if _, err := s.prospectSvc.GetByID(ctx, actor, prospectID); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListByProspect(ctx, s.db, actor.CompanyID, prospectID)
}

func (s *Service) Update(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req domain.UpdateMessageRequest) (domain.Message, error) {
	message, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return domain.Message{}, err
	}
	if !message.Draft() {
		return domain.Message{}, domain.ErrAlreadySent
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return domain.Message{}, domain.ErrInvalidContent
		}
		fields["content"] = *req.Content
	}
	if req.Subject != nil {
		fields["subject"] = strings.TrimSpace(*req.Subject)
	}
	if req.Variations != nil {
		fields["variations"] = datatypes.NewJSONSlice(req.Variations)
	}

	if err := s.repo.Update(ctx, s.db, actor.CompanyID, id, fields); err != nil {
		return domain.Message{}, err
	}
	return s.getVisible(ctx, actor, id)
}

func (s *Service) Send(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (domain.Message, error) {
	message, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return domain.Message{}, err
	}
	if !message.Draft() {
		return domain.Message{}, domain.ErrAlreadySent
	}

	// consumed tracks the campaign whose daily slot this send took, so a
	// failed commit can give the slot back.
	var consumed *snowflake.ID
	if message.CampaignID != nil && s.limiter != nil {
		campaign, err := s.campaignSvc.GetByID(ctx, actor.CompanyID, *message.CampaignID)
		if err == nil {
			allowed, err := s.limiter.Allow(ctx, campaign.ID, campaign.DailyContactLimit)
			if err != nil {
				return domain.Message{}, err
			}
			if !allowed {
				return domain.Message{}, domain.ErrDailyLimitReached
			}
			if campaign.DailyContactLimit > 0 {
				consumed = &campaign.ID
			}
		}
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"sent_at":    now,
		"sent_by":    actor.UserID,
		"updated_at": now,
	}
	if err := s.repo.Update(ctx, s.db, actor.CompanyID, id, fields); err != nil {
		if consumed != nil {
			s.limiter.Refund(ctx, *consumed)
		}
		return domain.Message{}, err
	}

	if err := s.prospectSvc.MarkContacted(ctx, actor.CompanyID, message.ProspectID); err != nil {
		s.log.Warn("failed to advance prospect after send",
			zap.String("prospect_id", message.ProspectID.String()),
			zap.Error(err))
	}

	s.log.Info("message sent",
		zap.String("message_id", id.String()),
		zap.String("sent_by", actor.UserID.String()))
	return s.getVisible(ctx, actor, id)
}

// getVisible loads a message and applies the actor's prospect visibility.
func (s *Service) getVisible(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (domain.Message, error) {
	message, err := s.repo.FindByID(ctx, s.db, actor.CompanyID, id)
	if err != nil {
		return domain.Message{}, err
	}
	if message == nil {
		return domain.Message{}, domain.ErrNotFound
	}
	if _, err := s.prospectSvc.GetByID(ctx, actor, message.ProspectID); err != nil {
		return domain.Message{}, domain.ErrNotFound
	}
	return *message, nil
}
