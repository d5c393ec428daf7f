package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/reachway/reachway/internal/campaign/domain"
	"github.com/reachway/reachway/internal/campaign/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Campaign{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func createDraft(t *testing.T, svc domain.Service, companyID snowflake.ID) domain.Campaign {
	t.Helper()
	campaign, err := svc.Create(context.Background(), companyID, domain.CreateCampaignRequest{
		Name:      "Q3 Outreach",
		CreatedBy: companyID + 1,
		TargetCriteria: domain.TargetCriteria{
			Titles:    []string{"VP Sales"},
			Locations: []string{"Austin, TX"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDraft, campaign.Status)
	return campaign
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	campaign := createDraft(t, svc, 100)

	assert.Equal(t, "professional", campaign.AITone)
	assert.True(t, campaign.AIPersonalization)
	assert.Equal(t, 50, campaign.DailyContactLimit)
	assert.Nil(t, campaign.StartedAt)

	criteria := campaign.TargetCriteria.Data()
	assert.Equal(t, []string{"VP Sales"}, criteria.Titles)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 100, domain.CreateCampaignRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, 100, domain.CreateCampaignRequest{Name: "x", AITone: "sarcastic"})
	assert.ErrorIs(t, err, domain.ErrInvalidTone)

	_, err = svc.Create(ctx, 100, domain.CreateCampaignRequest{Name: "x", DailyContactLimit: 10000})
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestTransitionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	campaign := createDraft(t, svc, 100)

	started, err := svc.Transition(ctx, 100, campaign.ID, domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, started.Status)
	require.NotNil(t, started.StartedAt)
	firstStart := *started.StartedAt

	paused, err := svc.Transition(ctx, 100, campaign.ID, domain.StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, paused.Status)

	resumed, err := svc.Transition(ctx, 100, campaign.ID, domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resumed.Status)
	require.NotNil(t, resumed.StartedAt)
	assert.Equal(t, firstStart, *resumed.StartedAt, "started_at set once")

	completed, err := svc.Transition(ctx, 100, campaign.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestInvalidTransitionsRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft := createDraft(t, svc, 100)
	_, err := svc.Transition(ctx, 100, draft.ID, domain.StatusPaused)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "draft cannot pause")
	_, err = svc.Transition(ctx, 100, draft.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "draft cannot complete")

	other := createDraft(t, svc, 100)
	_, err = svc.Transition(ctx, 100, other.ID, domain.StatusActive)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, 100, other.ID, domain.StatusActive)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "active cannot start again")

	_, err = svc.Transition(ctx, 100, other.ID, domain.StatusCompleted)
	require.NoError(t, err)
	for _, to := range []domain.Status{domain.StatusActive, domain.StatusPaused, domain.StatusCompleted} {
		_, err = svc.Transition(ctx, 100, other.ID, to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed is terminal")
	}

	_, err = svc.Transition(ctx, 100, draft.ID, domain.Status("archived"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateCannotChangeStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	campaign := createDraft(t, svc, 100)

	name := "Renamed"
	updated, err := svc.Update(ctx, 100, campaign.ID, domain.UpdateCampaignRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, domain.StatusDraft, updated.Status)
}

func TestTenantIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	campaign := createDraft(t, svc, 100)

	_, err := svc.GetByID(ctx, 200, campaign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cross-tenant read is not_found")

	_, err = svc.Transition(ctx, 200, campaign.ID, domain.StatusActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, 200, campaign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetByID(ctx, 100, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, got.ID)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createDraft(t, svc, 100)
	createDraft(t, svc, 100)
	_, err := svc.Transition(ctx, 100, a.ID, domain.StatusActive)
	require.NoError(t, err)

	resp, err := svc.List(ctx, 100, domain.ListCampaignRequest{Status: "active"})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 1)
	assert.Equal(t, a.ID, resp.Campaigns[0].ID)

	all, err := svc.List(ctx, 100, domain.ListCampaignRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Campaigns, 2)

	_, err = svc.List(ctx, 100, domain.ListCampaignRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
