package store

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"gorm.io/gorm"
)

var ticketsSettingsColumns = []string{"enabled", "channel_id"}

// NewTicket holds the caller-supplied fields of a ticket.
type NewTicket struct {
	GuildID  int64
	AuthorID int64
	Title    string
	Info     string
}

// TicketStore manages ticket settings and ticket history.
type TicketStore struct {
	db      *gorm.DB
	tickets history[models.Ticket]
}

// NewTicketStore constructs a TicketStore on the shared pool.
func NewTicketStore(db *gorm.DB) *TicketStore {
	return &TicketStore{
		db:      db,
		tickets: history[models.Ticket]{conn: db, subjectColumn: "author_id"},
	}
}

// UpsertSettings stores ticket settings, replacing every field of an existing row.
func (s *TicketStore) UpsertSettings(ctx context.Context, settings models.TicketsSettings) error {
	return wrapError("upsert", "tickets settings", upsertByGuild(ctx, s.db, &settings, ticketsSettingsColumns))
}

// GetSettings returns the ticket settings of a guild or ErrNotFound.
func (s *TicketStore) GetSettings(ctx context.Context, guildID int64) (*models.TicketsSettings, error) {
	row, err := takeByGuild[models.TicketsSettings](ctx, s.db, guildID)
	if err != nil {
		return nil, wrapError("get", "tickets settings", err)
	}
	return row, nil
}

// CreateTicket appends a ticket to the author's history.
func (s *TicketStore) CreateTicket(ctx context.Context, in NewTicket) error {
	row := models.Ticket{
		GuildID:  in.GuildID,
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Info:     in.Info,
	}
	return wrapError("create", "ticket", s.tickets.create(ctx, &row))
}

// LatestTicket returns the author's most recent ticket or ErrNotFound.
func (s *TicketStore) LatestTicket(ctx context.Context, guildID, authorID int64) (*models.Ticket, error) {
	row, err := s.tickets.latest(ctx, guildID, authorID)
	if err != nil {
		return nil, wrapError("get latest", "ticket", err)
	}
	return row, nil
}

// RecentTickets returns the author's HistoryLimit most recent tickets, oldest first.
func (s *TicketStore) RecentTickets(ctx context.Context, guildID, authorID int64) ([]models.Ticket, error) {
	rows, err := s.tickets.recent(ctx, guildID, authorID, HistoryLimit)
	if err != nil {
		return nil, wrapError("list", "ticket", err)
	}
	return rows, nil
}

// DeleteLatestTicket removes the author's most recent ticket, or reports
// ErrNotFound when the author has none.
func (s *TicketStore) DeleteLatestTicket(ctx context.Context, guildID, authorID int64) error {
	return wrapError("delete latest", "ticket", s.tickets.deleteLatest(ctx, guildID, authorID))
}
