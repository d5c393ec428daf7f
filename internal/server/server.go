package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reachway/reachway/internal/analytics"
	analyticsdomain "github.com/reachway/reachway/internal/analytics/domain"
	"github.com/reachway/reachway/internal/auth"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	"github.com/reachway/reachway/internal/auth/session"
	"github.com/reachway/reachway/internal/campaign"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	"github.com/reachway/reachway/internal/company"
	companydomain "github.com/reachway/reachway/internal/company/domain"
	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/discovery"
	"github.com/reachway/reachway/internal/message"
	messagedomain "github.com/reachway/reachway/internal/message/domain"
	"github.com/reachway/reachway/internal/observability"
	obsmiddleware "github.com/reachway/reachway/internal/observability/logger"
	obsmetrics "github.com/reachway/reachway/internal/observability/metrics"
	obstracing "github.com/reachway/reachway/internal/observability/tracing"
	"github.com/reachway/reachway/internal/permission"
	"github.com/reachway/reachway/internal/prospect"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/internal/providers"
	"github.com/reachway/reachway/internal/providers/llm"
	"github.com/reachway/reachway/internal/providers/scraper"
	"github.com/reachway/reachway/internal/ratelimit"
	"github.com/reachway/reachway/internal/signup"
	signupdomain "github.com/reachway/reachway/internal/signup/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	signup.Module,
	company.Module,
	campaign.Module,
	prospect.Module,
	message.Module,
	analytics.Module,
	discovery.Module,
	providers.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	sessions     *session.Manager
	authsvc      authdomain.Service
	signupSvc    signupdomain.Service
	companySvc   companydomain.Service
	campaignSvc  campaigndomain.Service
	prospectSvc  prospectdomain.Service
	messageSvc   messagedomain.Service
	analyticsSvc analyticsdomain.Service
	discoverySvc *discovery.Service
	llm          *llm.Client
	scraper      *scraper.Client
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	Sessions     *session.Manager
	Authsvc      authdomain.Service
	SignupSvc    signupdomain.Service
	CompanySvc   companydomain.Service
	CampaignSvc  campaigndomain.Service
	ProspectSvc  prospectdomain.Service
	MessageSvc   messagedomain.Service
	AnalyticsSvc analyticsdomain.Service
	DiscoverySvc *discovery.Service
	LLM          *llm.Client
	Scraper      *scraper.Client
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		sessions:     p.Sessions,
		authsvc:      p.Authsvc,
		signupSvc:    p.SignupSvc,
		companySvc:   p.CompanySvc,
		campaignSvc:  p.CampaignSvc,
		prospectSvc:  p.ProspectSvc,
		messageSvc:   p.MessageSvc,
		analyticsSvc: p.AnalyticsSvc,
		discoverySvc: p.DiscoverySvc,
		llm:          p.LLM,
		scraper:      p.Scraper,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())

	// -------- Company --------
	api.GET("/company", s.GetCompany)
	api.PATCH("/company", s.RequirePermission(permission.ActionManageCompany), s.UpdateCompany)

	// -------- Team --------
	api.GET("/team", s.RequirePermission(permission.ActionManageTeam), s.ListTeam)
	api.POST("/team", s.RequirePermission(permission.ActionManageTeam), s.CreateTeamMember)
	api.PATCH("/team/:id/role", s.RequirePermission(permission.ActionManageCompany), s.UpdateTeamMemberRole)

	// -------- Campaigns --------
	api.GET("/campaigns", s.ListCampaigns)
	api.POST("/campaigns", s.RequirePermission(permission.ActionCreateCampaigns), s.CreateCampaign)
	api.GET("/campaigns/:id", s.GetCampaignByID)
	api.PUT("/campaigns/:id", s.RequirePermission(permission.ActionEditCampaigns), s.UpdateCampaign)
	api.DELETE("/campaigns/:id", s.RequirePermission(permission.ActionDeleteCampaigns), s.DeleteCampaign)
	api.POST("/campaigns/:id/start", s.RequirePermission(permission.ActionEditCampaigns), s.StartCampaign)
	api.POST("/campaigns/:id/pause", s.RequirePermission(permission.ActionEditCampaigns), s.PauseCampaign)
	api.POST("/campaigns/:id/resume", s.RequirePermission(permission.ActionEditCampaigns), s.ResumeCampaign)
	api.POST("/campaigns/:id/complete", s.RequirePermission(permission.ActionEditCampaigns), s.CompleteCampaign)
	api.POST("/campaigns/:id/discover-prospects", s.RequirePermission(permission.ActionEditCampaigns), s.DiscoverProspects)
	api.POST("/campaigns/:id/add-prospects", s.RequirePermission(permission.ActionEditCampaigns), s.AddProspects)

	// -------- Prospects --------
	// Listing and reads are scoped to the actor inside the service; reps
	// only ever see their own assignments.
	api.GET("/prospects", s.ListProspects)
	api.POST("/prospects", s.CreateProspect)
	api.GET("/prospects/:id", s.GetProspectByID)
	api.PATCH("/prospects/:id", s.UpdateProspect)
	api.DELETE("/prospects/:id", s.RequirePermission(permission.ActionEditAllProspects), s.DeleteProspect)
	api.POST("/prospects/:id/assign", s.RequirePermission(permission.ActionAssignProspects), s.AssignProspect)
	api.POST("/prospects/:id/generate-message", s.RequirePermission(permission.ActionSendMessages), s.GenerateMessage)
	api.GET("/prospects/:id/messages", s.ListProspectMessages)

	// -------- Messages --------
	api.POST("/messages/:id/send", s.RequirePermission(permission.ActionSendMessages), s.SendMessage)
	api.PATCH("/messages/:id", s.RequirePermission(permission.ActionSendMessages), s.UpdateMessage)

	// -------- AI helpers --------
	api.POST("/ai/improve-message", s.RequirePermission(permission.ActionSendMessages), s.ImproveMessage)
	api.POST("/ai/variations", s.RequirePermission(permission.ActionSendMessages), s.MessageVariations)

	// -------- LinkedIn scrape --------
	api.POST("/linkedin/scrape", s.ScrapeLinkedInProfile)

	// -------- Analytics --------
	api.GET("/analytics", s.GetAnalytics)
	api.POST("/analytics/insights", s.RequirePermission(permission.ActionViewCompanyAnalytics), s.GetAnalyticsInsights)
}
