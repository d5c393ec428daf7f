package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/reachway/reachway/internal/actorctx"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	authrepository "github.com/reachway/reachway/internal/auth/repository"
	authservice "github.com/reachway/reachway/internal/auth/service"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	campaignrepository "github.com/reachway/reachway/internal/campaign/repository"
	campaignservice "github.com/reachway/reachway/internal/campaign/service"
	"github.com/reachway/reachway/internal/discovery"
	"github.com/reachway/reachway/internal/permission"
	"github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/internal/prospect/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	svc         domain.Service
	campaignSvc campaigndomain.Service
	authSvc     authdomain.Service
	companyID   snowflake.ID
	admin       actorctx.Actor
	rep         actorctx.Actor
	repUserID   snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{},
		&campaigndomain.Campaign{}, &domain.Prospect{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	authSvc := authservice.New(authservice.Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        authrepository.ProvideUserRepository(),
		SessionRepo: authrepository.ProvideSessionRepository(),
	})
	campaignSvc := campaignservice.New(campaignservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  campaignrepository.Provide(),
	})
	svc := New(Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		CampaignSvc: campaignSvc,
		AuthSvc:     authSvc,
	})

	companyID := node.Generate()
	admin, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: companyID,
		Email:     "admin@acme.test",
		Password:  "longenoughpw",
		FullName:  "Admin",
		Role:      permission.RoleAdmin,
	})
	require.NoError(t, err)
	rep, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: companyID,
		Email:     "rep@acme.test",
		Password:  "longenoughpw",
		FullName:  "Rep",
		Role:      permission.RoleRep,
	})
	require.NoError(t, err)

	return &fixture{
		svc:         svc,
		campaignSvc: campaignSvc,
		authSvc:     authSvc,
		companyID:   companyID,
		admin:       actorctx.Actor{UserID: admin.ID, CompanyID: companyID, Role: permission.RoleAdmin},
		rep:         actorctx.Actor{UserID: rep.ID, CompanyID: companyID, Role: permission.RoleRep},
		repUserID:   rep.ID,
	}
}

func (f *fixture) createProspect(t *testing.T, url string) domain.Prospect {
	t.Helper()
	prospect, err := f.svc.Create(context.Background(), f.admin, domain.CreateProspectRequest{
		LinkedInURL: url,
		FullName:    "Some Person",
	})
	require.NoError(t, err)
	return prospect
}

func TestCreateDuplicateURLConflicts(t *testing.T) {
	f := newFixture(t)
	f.createProspect(t, "https://linkedin.com/in/dup")

	_, err := f.svc.Create(context.Background(), f.admin, domain.CreateProspectRequest{
		LinkedInURL: "https://linkedin.com/in/dup",
		FullName:    "Other Person",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRepScopeOnListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.createProspect(t, "https://linkedin.com/in/mine")
	theirs := f.createProspect(t, "https://linkedin.com/in/theirs")

	_, err := f.svc.Assign(ctx, f.admin, mine.ID, f.repUserID)
	require.NoError(t, err)

	adminList, err := f.svc.List(ctx, f.admin, domain.ListProspectRequest{})
	require.NoError(t, err)
	assert.Len(t, adminList.Prospects, 2)

	repList, err := f.svc.List(ctx, f.rep, domain.ListProspectRequest{})
	require.NoError(t, err)
	require.Len(t, repList.Prospects, 1)
	assert.Equal(t, mine.ID, repList.Prospects[0].ID)

	_, err = f.svc.GetByID(ctx, f.rep, mine.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetByID(ctx, f.rep, theirs.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "unassigned prospect is invisible to reps")
}

func TestTenantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t, "https://linkedin.com/in/scoped")

	stranger := actorctx.Actor{UserID: 1, CompanyID: f.companyID + 1, Role: permission.RoleAdmin}
	_, err := f.svc.GetByID(ctx, stranger, prospect.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(ctx, stranger, prospect.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignRequiresSameCompanyUser(t *testing.T) {
	f := newFixture(t)
	prospect := f.createProspect(t, "https://linkedin.com/in/assignee")

	_, err := f.svc.Assign(context.Background(), f.admin, prospect.ID, 999999)
	assert.ErrorIs(t, err, domain.ErrInvalidAssignee)
}

func TestBulkAddFromCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	campaign, err := f.campaignSvc.Create(ctx, f.companyID, campaigndomain.CreateCampaignRequest{
		Name:      "Discovery Import",
		CreatedBy: f.admin.UserID,
	})
	require.NoError(t, err)

	result, err := f.svc.BulkAdd(ctx, f.admin, campaign.ID, []discovery.Candidate{
		{ExternalID: "x1", Name: "Ada Quinn", ProfileURL: "https://linkedin.com/in/ada", Email: "ada@corp.com", Company: "Initech"},
		{ExternalID: "x2", Name: "Bo Reyes", ProfileURL: "https://linkedin.com/in/bo"},
		{ExternalID: "x3", Name: "No URL"},
	})
	require.NoError(t, err)
	require.Len(t, result.Added, 2, "candidates without a profile url are dropped")

	added := result.Added[0]
	assert.Equal(t, domain.StatusNew, added.Status)
	assert.Equal(t, "x1", added.ExternalContactID)
	assert.Equal(t, "Initech", added.Employer)
	require.NotNil(t, added.CampaignID)
	assert.Equal(t, campaign.ID, *added.CampaignID)
}

func TestBulkAddUnknownCampaign(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.BulkAdd(context.Background(), f.admin, 424242, []discovery.Candidate{
		{Name: "X", ProfileURL: "https://linkedin.com/in/x"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCampaign)
}

func TestMarkContactedAdvancesOnlyNew(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t, "https://linkedin.com/in/funnel")

	require.NoError(t, f.svc.MarkContacted(ctx, f.companyID, prospect.ID))
	got, err := f.svc.GetByID(ctx, f.admin, prospect.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusContacted, got.Status)
	assert.NotNil(t, got.LastContactedAt)

	status := string(domain.StatusResponded)
	_, err = f.svc.Update(ctx, f.admin, prospect.ID, domain.UpdateProspectRequest{Status: &status})
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkContacted(ctx, f.companyID, prospect.ID))
	got, err = f.svc.GetByID(ctx, f.admin, prospect.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResponded, got.Status, "funnel stage not regressed")
}
