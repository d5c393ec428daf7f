package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/actorctx"
	"github.com/reachway/reachway/internal/discovery"
	"github.com/reachway/reachway/pkg/db/pagination"
)

type CreateProspectRequest struct {
	CampaignID  *snowflake.ID
	LinkedInURL string
	FirstName   string
	LastName    string
	FullName    string
	Title       string
	Employer    string
	Industry    string
	Location    string
	Headline    string
	PhotoURL    string
	Email       string
	Phone       string
	Notes       string
}

type UpdateProspectRequest struct {
	Status   *string
	Title    *string
	Employer *string
	Industry *string
	Location *string
	Email    *string
	Phone    *string
	Notes    *string
}

type ListProspectRequest struct {
	PageToken  string
	PageSize   int
	CampaignID *snowflake.ID
	Status     string
	AssignedTo *snowflake.ID
}

type ListProspectResponse struct {
	pagination.PageInfo
	Prospects []Prospect `json:"prospects"`
}

// BulkAddResult reports what a candidate import did.
type BulkAddResult struct {
	Added      []Prospect   `json:"added"`
	CampaignID snowflake.ID `json:"campaign_id"`
}

// Service methods take the acting user so listings can be narrowed to the
// rep's own assignments. Tenant scoping always comes from the actor.
type Service interface {
	Create(ctx context.Context, actor actorctx.Actor, req CreateProspectRequest) (Prospect, error)
	List(ctx context.Context, actor actorctx.Actor, req ListProspectRequest) (ListProspectResponse, error)
	GetByID(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (Prospect, error)
	Update(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req UpdateProspectRequest) (Prospect, error)
	Delete(ctx context.Context, actor actorctx.Actor, id snowflake.ID) error
	Assign(ctx context.Context, actor actorctx.Actor, id, userID snowflake.ID) (Prospect, error)
	BulkAdd(ctx context.Context, actor actorctx.Actor, campaignID snowflake.ID, candidates []discovery.Candidate) (BulkAddResult, error)
	// MarkContacted advances a prospect to contacted when a message is sent.
	MarkContacted(ctx context.Context, companyID, id snowflake.ID) error
}

var (
	ErrInvalidURL      = errors.New("invalid_linkedin_url")
	ErrInvalidName     = errors.New("invalid_full_name")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidCampaign = errors.New("invalid_campaign")
	ErrInvalidAssignee = errors.New("invalid_assignee")
	ErrDuplicate       = errors.New("duplicate_prospect")
	ErrNotFound        = errors.New("not_found")
)
