package handlers

import "github.com/router-for-me/guildrpc/internal/models"

// Empty is the body of every call that returns nothing.
type Empty struct{}

type Guild struct {
	GuildID int64 `json:"guild_id"`
}

func (m *Guild) GetGuildID() int64 { return m.GuildID }

type LogsSettings struct {
	GuildID   int64 `json:"guild_id"`
	Enabled   bool  `json:"enabled"`
	ChannelID int64 `json:"channel_id"`
}

func (m *LogsSettings) GetGuildID() int64 { return m.GuildID }

type LogsSettingsRequest struct {
	GuildID int64 `json:"guild_id"`
}

func (m *LogsSettingsRequest) GetGuildID() int64 { return m.GuildID }

type AutomodSettings struct {
	GuildID           int64 `json:"guild_id"`
	AutobanEnabled    bool  `json:"autoban_enabled"`
	AutobanThreshold  int32 `json:"autoban_threshold"`
	AutokickEnabled   bool  `json:"autokick_enabled"`
	AutokickThreshold int32 `json:"autokick_threshold"`
}

func (m *AutomodSettings) GetGuildID() int64 { return m.GuildID }

type AutomodSettingsRequest struct {
	GuildID int64 `json:"guild_id"`
}

func (m *AutomodSettingsRequest) GetGuildID() int64 { return m.GuildID }

type NewWarn struct {
	GuildID       int64  `json:"guild_id"`
	StaffMemberID int64  `json:"staff_member_id"`
	TargetUserID  int64  `json:"target_user_id"`
	Reason        string `json:"reason"`
}

func (m *NewWarn) GetGuildID() int64 { return m.GuildID }

// WarnRequest addresses one member's warning history.
type WarnRequest struct {
	GuildID      int64 `json:"guild_id"`
	TargetUserID int64 `json:"target_user_id"`
}

func (m *WarnRequest) GetGuildID() int64 { return m.GuildID }

type Warn struct {
	ID            int64  `json:"id"`
	GuildID       int64  `json:"guild_id"`
	StaffMemberID int64  `json:"staff_member_id"`
	TargetUserID  int64  `json:"target_user_id"`
	Reason        string `json:"reason"`
	CreatedAt     int64  `json:"created_at"` // unix seconds
}

type Warns struct {
	Warns []Warn `json:"warns"`
}

type TicketsSettings struct {
	GuildID   int64 `json:"guild_id"`
	Enabled   bool  `json:"enabled"`
	ChannelID int64 `json:"channel_id"`
}

func (m *TicketsSettings) GetGuildID() int64 { return m.GuildID }

type TicketsSettingsRequest struct {
	GuildID int64 `json:"guild_id"`
}

func (m *TicketsSettingsRequest) GetGuildID() int64 { return m.GuildID }

type NewTicket struct {
	GuildID  int64  `json:"guild_id"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Info     string `json:"info"`
}

func (m *NewTicket) GetGuildID() int64 { return m.GuildID }

// TicketRequest addresses one member's ticket history.
type TicketRequest struct {
	GuildID  int64 `json:"guild_id"`
	AuthorID int64 `json:"author_id"`
}

func (m *TicketRequest) GetGuildID() int64 { return m.GuildID }

type Ticket struct {
	ID        int64  `json:"id"`
	GuildID   int64  `json:"guild_id"`
	AuthorID  int64  `json:"author_id"`
	Title     string `json:"title"`
	Info      string `json:"info"`
	CreatedAt int64  `json:"created_at"` // unix seconds
}

type Tickets struct {
	Tickets []Ticket `json:"tickets"`
}

func warnFromModel(row models.Warn) Warn {
	return Warn{
		ID:            row.ID,
		GuildID:       row.GuildID,
		StaffMemberID: row.StaffMemberID,
		TargetUserID:  row.TargetUserID,
		Reason:        row.Reason,
		CreatedAt:     row.CreatedAt.Unix(),
	}
}

func ticketFromModel(row models.Ticket) Ticket {
	return Ticket{
		ID:        row.ID,
		GuildID:   row.GuildID,
		AuthorID:  row.AuthorID,
		Title:     row.Title,
		Info:      row.Info,
		CreatedAt: row.CreatedAt.Unix(),
	}
}
