package handlers

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/store"
	"gorm.io/gorm"
)

// LogsHandler serves logs.LogsService.
type LogsHandler struct {
	settings *store.LogsSettingsStore
	deps     Deps
}

// NewLogsHandler constructs a LogsHandler.
func NewLogsHandler(db *gorm.DB, deps Deps) *LogsHandler {
	return &LogsHandler{settings: store.NewLogsSettingsStore(db), deps: deps}
}

// Service lists the logs methods.
func (h *LogsHandler) Service() Service {
	return Service{
		Name: LogsServiceName,
		Methods: []Method{
			unary(h.deps, LogsServiceName, "CreateOrUpdateSettings", h.upsertSettings, func(req *LogsSettings) notify.Event {
				return guildEvent(req.GuildID)
			}),
			unary[LogsSettingsRequest, LogsSettings](h.deps, LogsServiceName, "GetSettings", h.getSettings, nil),
		},
	}
}

func (h *LogsHandler) upsertSettings(ctx context.Context, req *LogsSettings) (*Empty, error) {
	row := models.LogsSettings{GuildID: req.GuildID, Enabled: req.Enabled, ChannelID: req.ChannelID}
	if err := h.settings.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *LogsHandler) getSettings(ctx context.Context, req *LogsSettingsRequest) (*LogsSettings, error) {
	row, err := h.settings.Get(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}
	return &LogsSettings{GuildID: row.GuildID, Enabled: row.Enabled, ChannelID: row.ChannelID}, nil
}
