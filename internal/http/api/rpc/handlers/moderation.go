package handlers

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/store"
	"gorm.io/gorm"
)

// ModerationHandler serves moderation.ModerationService: automod settings and
// the per-member warning history.
type ModerationHandler struct {
	moderation *store.ModerationStore
	deps       Deps
}

// NewModerationHandler constructs a ModerationHandler.
func NewModerationHandler(db *gorm.DB, deps Deps) *ModerationHandler {
	return &ModerationHandler{moderation: store.NewModerationStore(db), deps: deps}
}

// Service lists the moderation methods.
func (h *ModerationHandler) Service() Service {
	warnEvent := func(guildID, targetUserID int64) notify.Event {
		ev := guildEvent(guildID)
		ev.SubjectID = targetUserID
		return ev
	}
	return Service{
		Name: ModerationServiceName,
		Methods: []Method{
			unary(h.deps, ModerationServiceName, "CreateOrUpdateSettings", h.upsertSettings, func(req *AutomodSettings) notify.Event {
				return guildEvent(req.GuildID)
			}),
			unary[AutomodSettingsRequest, AutomodSettings](h.deps, ModerationServiceName, "GetSettings", h.getSettings, nil),
			unary(h.deps, ModerationServiceName, "CreateWarn", h.createWarn, func(req *NewWarn) notify.Event {
				return warnEvent(req.GuildID, req.TargetUserID)
			}),
			unary[WarnRequest, Warn](h.deps, ModerationServiceName, "GetWarn", h.getWarn, nil),
			unary[WarnRequest, Warns](h.deps, ModerationServiceName, "GetWarns", h.getWarns, nil),
			unary(h.deps, ModerationServiceName, "DeleteWarn", h.deleteWarn, func(req *WarnRequest) notify.Event {
				return warnEvent(req.GuildID, req.TargetUserID)
			}),
		},
	}
}

func (h *ModerationHandler) upsertSettings(ctx context.Context, req *AutomodSettings) (*Empty, error) {
	row := models.AutomodSettings{
		GuildID:           req.GuildID,
		AutobanEnabled:    req.AutobanEnabled,
		AutobanThreshold:  req.AutobanThreshold,
		AutokickEnabled:   req.AutokickEnabled,
		AutokickThreshold: req.AutokickThreshold,
	}
	if err := h.moderation.UpsertSettings(ctx, row); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *ModerationHandler) getSettings(ctx context.Context, req *AutomodSettingsRequest) (*AutomodSettings, error) {
	row, err := h.moderation.GetSettings(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}
	return &AutomodSettings{
		GuildID:           row.GuildID,
		AutobanEnabled:    row.AutobanEnabled,
		AutobanThreshold:  row.AutobanThreshold,
		AutokickEnabled:   row.AutokickEnabled,
		AutokickThreshold: row.AutokickThreshold,
	}, nil
}

func (h *ModerationHandler) createWarn(ctx context.Context, req *NewWarn) (*Empty, error) {
	in := store.NewWarn{
		GuildID:       req.GuildID,
		StaffMemberID: req.StaffMemberID,
		TargetUserID:  req.TargetUserID,
		Reason:        req.Reason,
	}
	if err := h.moderation.CreateWarn(ctx, in); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *ModerationHandler) getWarn(ctx context.Context, req *WarnRequest) (*Warn, error) {
	row, err := h.moderation.LatestWarn(ctx, req.GuildID, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	warn := warnFromModel(*row)
	return &warn, nil
}

func (h *ModerationHandler) getWarns(ctx context.Context, req *WarnRequest) (*Warns, error) {
	rows, err := h.moderation.RecentWarns(ctx, req.GuildID, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	out := &Warns{Warns: make([]Warn, 0, len(rows))}
	for _, row := range rows {
		out.Warns = append(out.Warns, warnFromModel(row))
	}
	return out, nil
}

func (h *ModerationHandler) deleteWarn(ctx context.Context, req *WarnRequest) (*Empty, error) {
	if err := h.moderation.DeleteLatestWarn(ctx, req.GuildID, req.TargetUserID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}
