package handlers

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/store"
	"gorm.io/gorm"
)

// TicketsHandler serves tickets.TicketsService.
type TicketsHandler struct {
	tickets *store.TicketStore
	deps    Deps
}

// NewTicketsHandler constructs a TicketsHandler.
func NewTicketsHandler(db *gorm.DB, deps Deps) *TicketsHandler {
	return &TicketsHandler{tickets: store.NewTicketStore(db), deps: deps}
}

// Service lists the tickets methods.
func (h *TicketsHandler) Service() Service {
	ticketEvent := func(guildID, authorID int64) notify.Event {
		ev := guildEvent(guildID)
		ev.SubjectID = authorID
		return ev
	}
	return Service{
		Name: TicketsServiceName,
		Methods: []Method{
			unary(h.deps, TicketsServiceName, "CreateOrUpdateSettings", h.upsertSettings, func(req *TicketsSettings) notify.Event {
				return guildEvent(req.GuildID)
			}),
			unary[TicketsSettingsRequest, TicketsSettings](h.deps, TicketsServiceName, "GetSettings", h.getSettings, nil),
			unary(h.deps, TicketsServiceName, "CreateTicket", h.createTicket, func(req *NewTicket) notify.Event {
				return ticketEvent(req.GuildID, req.AuthorID)
			}),
			unary[TicketRequest, Ticket](h.deps, TicketsServiceName, "GetTicket", h.getTicket, nil),
			unary[TicketRequest, Tickets](h.deps, TicketsServiceName, "GetTickets", h.getTickets, nil),
			unary(h.deps, TicketsServiceName, "DeleteTicket", h.deleteTicket, func(req *TicketRequest) notify.Event {
				return ticketEvent(req.GuildID, req.AuthorID)
			}),
		},
	}
}

func (h *TicketsHandler) upsertSettings(ctx context.Context, req *TicketsSettings) (*Empty, error) {
	row := models.TicketsSettings{GuildID: req.GuildID, Enabled: req.Enabled, ChannelID: req.ChannelID}
	if err := h.tickets.UpsertSettings(ctx, row); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *TicketsHandler) getSettings(ctx context.Context, req *TicketsSettingsRequest) (*TicketsSettings, error) {
	row, err := h.tickets.GetSettings(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}
	return &TicketsSettings{GuildID: row.GuildID, Enabled: row.Enabled, ChannelID: row.ChannelID}, nil
}

func (h *TicketsHandler) createTicket(ctx context.Context, req *NewTicket) (*Empty, error) {
	in := store.NewTicket{GuildID: req.GuildID, AuthorID: req.AuthorID, Title: req.Title, Info: req.Info}
	if err := h.tickets.CreateTicket(ctx, in); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *TicketsHandler) getTicket(ctx context.Context, req *TicketRequest) (*Ticket, error) {
	row, err := h.tickets.LatestTicket(ctx, req.GuildID, req.AuthorID)
	if err != nil {
		return nil, err
	}
	ticket := ticketFromModel(*row)
	return &ticket, nil
}

func (h *TicketsHandler) getTickets(ctx context.Context, req *TicketRequest) (*Tickets, error) {
	rows, err := h.tickets.RecentTickets(ctx, req.GuildID, req.AuthorID)
	if err != nil {
		return nil, err
	}
	out := &Tickets{Tickets: make([]Ticket, 0, len(rows))}
	for _, row := range rows {
		out.Tickets = append(out.Tickets, ticketFromModel(row))
	}
	return out, nil
}

func (h *TicketsHandler) deleteTicket(ctx context.Context, req *TicketRequest) (*Empty, error) {
	if err := h.tickets.DeleteLatestTicket(ctx, req.GuildID, req.AuthorID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}
