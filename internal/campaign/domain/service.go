package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/pkg/db/pagination"
)

type CreateCampaignRequest struct {
	Name              string
	Description       string
	TargetCriteria    TargetCriteria
	MessageTemplate   string
	AIPersonalization *bool
	AITone            string
	DailyContactLimit int
	CreatedBy         snowflake.ID
}

type UpdateCampaignRequest struct {
	Name              *string
	Description       *string
	TargetCriteria    *TargetCriteria
	MessageTemplate   *string
	AIPersonalization *bool
	AITone            *string
	DailyContactLimit *int
}

type ListCampaignRequest struct {
	PageToken string
	PageSize  int
	Status    string
}

type ListCampaignResponse struct {
	pagination.PageInfo
	Campaigns []Campaign `json:"campaigns"`
}

type Service interface {
	Create(ctx context.Context, companyID snowflake.ID, req CreateCampaignRequest) (Campaign, error)
	List(ctx context.Context, companyID snowflake.ID, req ListCampaignRequest) (ListCampaignResponse, error)
	GetByID(ctx context.Context, companyID, id snowflake.ID) (Campaign, error)
	Update(ctx context.Context, companyID, id snowflake.ID, req UpdateCampaignRequest) (Campaign, error)
	Delete(ctx context.Context, companyID, id snowflake.ID) error
	Transition(ctx context.Context, companyID, id snowflake.ID, to Status) (Campaign, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTone       = errors.New("invalid_ai_tone")
	ErrInvalidLimit      = errors.New("invalid_daily_contact_limit")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotFound          = errors.New("not_found")
)
