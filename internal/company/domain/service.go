package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateCompanyRequest struct {
	Name     string
	Industry string
	Website  string
}

type UpdateCompanyRequest struct {
	Name             *string
	Industry         *string
	Website          *string
	ValueProposition *string
	SubscriptionTier *string
}

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	GetByID(ctx context.Context, id snowflake.ID) (Company, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateCompanyRequest) (Company, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidTier = errors.New("invalid_subscription_tier")
	ErrNotFound    = errors.New("not_found")
)
