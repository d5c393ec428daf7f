package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/actorctx"
)

type UpdateMessageRequest struct {
	Content    *string
	Subject    *string
	Variations []string
}

type Service interface {
	// Generate drafts a new message for a prospect. Each call inserts a
	// fresh row, so regenerating keeps the history.
	Generate(ctx context.Context, actor actorctx.Actor, prospectID snowflake.ID) (Message, error)
	ListForProspect(ctx context.Context, actor actorctx.Actor, prospectID snowflake.ID) ([]Message, error)
	Update(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req UpdateMessageRequest) (Message, error)
	Send(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (Message, error)
}

var (
	ErrInvalidContent    = errors.New("invalid_content")
	ErrAlreadySent       = errors.New("message_already_sent")
	ErrDailyLimitReached = errors.New("daily_contact_limit_reached")
	ErrNotFound          = errors.New("not_found")
)
