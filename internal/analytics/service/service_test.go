package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/reachway/reachway/internal/actorctx"
	"github.com/reachway/reachway/internal/analytics/domain"
	analyticsrepository "github.com/reachway/reachway/internal/analytics/repository"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	authrepository "github.com/reachway/reachway/internal/auth/repository"
	authservice "github.com/reachway/reachway/internal/auth/service"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	companydomain "github.com/reachway/reachway/internal/company/domain"
	messagedomain "github.com/reachway/reachway/internal/message/domain"
	"github.com/reachway/reachway/internal/permission"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	prospectrepository "github.com/reachway/reachway/internal/prospect/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeAnalyst struct {
	lastStats string
	text      string
}

func (f *fakeAnalyst) Insights(_ context.Context, statsJSON string) (string, error) {
	f.lastStats = statsJSON
	return f.text, nil
}

type fixture struct {
	conn      *gorm.DB
	node      *snowflake.Node
	svc       *Service
	analyst   *fakeAnalyst
	companyID snowflake.ID
	admin     actorctx.Actor
	rep       actorctx.Actor
	repUser   *authdomain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&companydomain.Company{}, &authdomain.User{}, &authdomain.Session{},
		&campaigndomain.Campaign{}, &prospectdomain.Prospect{}, &messagedomain.Message{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	authSvc := authservice.New(authservice.Params{
		DB: conn, Log: log, GenID: node,
		Repo:        authrepository.ProvideUserRepository(),
		SessionRepo: authrepository.ProvideSessionRepository(),
	})

	companyID := node.Generate()
	admin, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: companyID,
		Email:     "admin@acme.test",
		Password:  "longenoughpw",
		FullName:  "Alice Admin",
		Role:      permission.RoleAdmin,
	})
	require.NoError(t, err)
	rep, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: companyID,
		Email:     "rep@acme.test",
		Password:  "longenoughpw",
		FullName:  "Rudy Rep",
		Role:      permission.RoleRep,
	})
	require.NoError(t, err)

	analyst := &fakeAnalyst{text: "Responses trail contacts; tighten targeting."}
	svc := &Service{
		db:           conn,
		log:          log,
		repo:         analyticsrepository.Provide(),
		prospectRepo: prospectrepository.Provide(),
		authSvc:      authSvc,
		llm:          analyst,
	}

	return &fixture{
		conn:      conn,
		node:      node,
		svc:       svc,
		analyst:   analyst,
		companyID: companyID,
		admin:     actorctx.Actor{UserID: admin.ID, CompanyID: companyID, Role: permission.RoleAdmin},
		rep:       actorctx.Actor{UserID: rep.ID, CompanyID: companyID, Role: permission.RoleRep},
		repUser:   rep,
	}
}

func (f *fixture) seedCampaign(t *testing.T, name string, status campaigndomain.Status) snowflake.ID {
	t.Helper()
	campaign := campaigndomain.Campaign{
		ID:        f.node.Generate(),
		CompanyID: f.companyID,
		Name:      name,
		Status:    status,
		CreatedBy: f.admin.UserID,
	}
	require.NoError(t, f.conn.Create(&campaign).Error)
	return campaign.ID
}

var prospectSeq int

func (f *fixture) seedProspect(t *testing.T, campaignID *snowflake.ID, status prospectdomain.Status, assignedTo *snowflake.ID, employer, industry string) snowflake.ID {
	t.Helper()
	prospectSeq++
	prospect := prospectdomain.Prospect{
		ID:          f.node.Generate(),
		CompanyID:   f.companyID,
		CampaignID:  campaignID,
		LinkedInURL: fmt.Sprintf("https://linkedin.com/in/seed-%d", prospectSeq),
		FullName:    fmt.Sprintf("Prospect %d", prospectSeq),
		Status:      status,
		AssignedTo:  assignedTo,
		Employer:    employer,
		Industry:    industry,
	}
	require.NoError(t, f.conn.Create(&prospect).Error)
	return prospect.ID
}

func (f *fixture) seedSentMessage(t *testing.T, prospectID snowflake.ID, campaignID, sentBy *snowflake.ID) {
	t.Helper()
	now := time.Now().UTC()
	message := messagedomain.Message{
		ID:         f.node.Generate(),
		CompanyID:  f.companyID,
		ProspectID: prospectID,
		CampaignID: campaignID,
		Content:    "hello",
		SentAt:     &now,
		SentBy:     sentBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.conn.Create(&message).Error)
}

func seedFunnel(t *testing.T, f *fixture) (active, draft snowflake.ID) {
	active = f.seedCampaign(t, "Outbound Q3", campaigndomain.StatusActive)
	draft = f.seedCampaign(t, "Dormant", campaigndomain.StatusDraft)

	repID := f.repUser.ID

	// Active campaign: 4 prospects, 3 contacted, 2 responded, 1 converted.
	p1 := f.seedProspect(t, &active, prospectdomain.StatusConverted, &repID, "Initech", "Software")
	p2 := f.seedProspect(t, &active, prospectdomain.StatusResponded, &repID, "Globex", "Software")
	p3 := f.seedProspect(t, &active, prospectdomain.StatusContacted, nil, "Initech", "Finance")
	_ = f.seedProspect(t, &active, prospectdomain.StatusNew, nil, "Hooli", "")

	// Unattached prospect outside any campaign.
	_ = f.seedProspect(t, nil, prospectdomain.StatusNew, nil, "", "")

	f.seedSentMessage(t, p1, &active, &repID)
	f.seedSentMessage(t, p2, &active, &repID)
	f.seedSentMessage(t, p3, &active, &f.admin.UserID)
	return active, draft
}

func TestCompanyReport(t *testing.T) {
	f := newFixture(t)
	activeID, draftID := seedFunnel(t, f)

	report, err := f.svc.Report(context.Background(), f.admin)
	require.NoError(t, err)

	assert.Equal(t, permission.RoleAdmin, report.Role)
	o := report.Overview
	assert.Equal(t, int64(5), o.TotalProspects)
	assert.Equal(t, int64(2), o.TotalCampaigns)
	assert.Equal(t, int64(1), o.ActiveCampaigns)
	assert.Equal(t, int64(3), o.MessagesSent)
	assert.Equal(t, int64(3), o.ProspectsContacted)
	assert.Equal(t, int64(2), o.ResponsesReceived)
	assert.Equal(t, int64(1), o.MeetingsBooked)
	assert.Equal(t, int64(1), o.Conversions)
	assert.Equal(t, int64(3), o.CompaniesContacted)
	assert.Equal(t, int64(2), o.IndustriesTargeted)
	assert.Equal(t, 67, o.ResponseRate)
	assert.Equal(t, 20, o.ConversionRate)

	require.Len(t, report.CampaignPerformance, 2)
	byID := map[snowflake.ID]domain.CampaignStats{}
	for _, c := range report.CampaignPerformance {
		byID[c.ID] = c
	}
	activeStats := byID[activeID]
	assert.Equal(t, "Outbound Q3", activeStats.Name)
	assert.Equal(t, int64(4), activeStats.TotalProspects)
	assert.Equal(t, int64(3), activeStats.Contacted)
	assert.Equal(t, int64(2), activeStats.Responses)
	assert.Equal(t, int64(3), activeStats.MessagesSent)
	assert.Equal(t, 67, activeStats.ResponseRate)

	draftStats := byID[draftID]
	assert.Equal(t, int64(0), draftStats.TotalProspects)
	assert.Equal(t, 0, draftStats.ResponseRate)

	require.NotEmpty(t, report.TopCampaigns)
	assert.Equal(t, activeID, report.TopCampaigns[0].ID)

	require.Len(t, report.TeamPerformance, 2)
	byMember := map[snowflake.ID]domain.TeamMemberStats{}
	for _, m := range report.TeamPerformance {
		byMember[m.ID] = m
	}
	repStats := byMember[f.repUser.ID]
	assert.Equal(t, "Rudy Rep", repStats.Name)
	assert.Equal(t, int64(2), repStats.ProspectsAssigned)
	assert.Equal(t, int64(2), repStats.MessagesSent)
	assert.Equal(t, int64(2), repStats.Contacted)
	assert.Equal(t, int64(2), repStats.Responses)
}

func TestRepReportScopedToOwnRows(t *testing.T) {
	f := newFixture(t)
	seedFunnel(t, f)

	report, err := f.svc.Report(context.Background(), f.rep)
	require.NoError(t, err)

	assert.Equal(t, permission.RoleRep, report.Role)
	o := report.Overview
	assert.Equal(t, int64(2), o.TotalProspects)
	assert.Equal(t, int64(2), o.MessagesSent)
	assert.Equal(t, int64(2), o.ProspectsContacted)
	assert.Equal(t, int64(2), o.ResponsesReceived)
	assert.Equal(t, int64(1), o.Conversions)
	assert.Equal(t, 100, o.ResponseRate)

	assert.Empty(t, report.CampaignPerformance)
	assert.Empty(t, report.TeamPerformance)
	assert.Zero(t, o.TotalCampaigns)
	assert.Zero(t, o.CompaniesContacted)
}

func TestReportEmptyCompany(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.Report(context.Background(), f.admin)
	require.NoError(t, err)

	assert.Zero(t, report.Overview.TotalProspects)
	assert.Zero(t, report.Overview.ResponseRate)
	assert.Zero(t, report.Overview.ConversionRate)
	assert.Empty(t, report.CampaignPerformance)
	assert.Empty(t, report.TopCampaigns)
}

func TestInsightsFeedsReportToLLM(t *testing.T) {
	f := newFixture(t)
	seedFunnel(t, f)

	insights, err := f.svc.Insights(context.Background(), f.admin)
	require.NoError(t, err)

	assert.Equal(t, "Responses trail contacts; tighten targeting.", insights.Insights)
	assert.False(t, insights.GeneratedAt.IsZero())
	assert.Contains(t, f.analyst.lastStats, "total_prospects")
	assert.Contains(t, f.analyst.lastStats, "Outbound Q3")
}
