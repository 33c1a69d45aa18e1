package handlers

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/store"
	"gorm.io/gorm"
)

// GuildHandler serves guild.GuildService.
type GuildHandler struct {
	guilds *store.GuildStore
	deps   Deps
}

// NewGuildHandler constructs a GuildHandler.
func NewGuildHandler(db *gorm.DB, deps Deps) *GuildHandler {
	return &GuildHandler{guilds: store.NewGuildStore(db), deps: deps}
}

// Service lists the guild methods.
func (h *GuildHandler) Service() Service {
	event := func(req *Guild) notify.Event { return guildEvent(req.GuildID) }
	return Service{
		Name: GuildServiceName,
		Methods: []Method{
			unary(h.deps, GuildServiceName, "CreateGuild", h.createGuild, event),
			unary(h.deps, GuildServiceName, "DeleteGuild", h.deleteGuild, event),
		},
	}
}

func (h *GuildHandler) createGuild(ctx context.Context, req *Guild) (*Empty, error) {
	if err := h.guilds.Create(ctx, req.GuildID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *GuildHandler) deleteGuild(ctx context.Context, req *Guild) (*Empty, error) {
	if err := h.guilds.Delete(ctx, req.GuildID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}
