package store

import (
	"context"
	"testing"
)

func TestGuildCreateIsIdempotent(t *testing.T) {
	conn := setupStoreTestDB(t)
	guilds := NewGuildStore(conn)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := guilds.Create(ctx, 42); err != nil {
			t.Fatalf("create guild run %d: %v", i+1, err)
		}
	}

	if n := countRows(t, conn, "guild", "guild_id = ?", 42); n != 1 {
		t.Fatalf("expected exactly 1 guild row, got %d", n)
	}
}

func TestGuildDeleteUnknownSucceeds(t *testing.T) {
	conn := setupStoreTestDB(t)
	guilds := NewGuildStore(conn)

	if err := guilds.Delete(context.Background(), 7); err != nil {
		t.Fatalf("delete unknown guild: %v", err)
	}
}

func TestGuildDeleteRemovesRowOnly(t *testing.T) {
	conn := setupStoreTestDB(t)
	guilds := NewGuildStore(conn)
	moderation := NewModerationStore(conn)
	ctx := context.Background()

	if err := guilds.Create(ctx, 42); err != nil {
		t.Fatalf("create guild: %v", err)
	}
	if err := guilds.Create(ctx, 43); err != nil {
		t.Fatalf("create guild: %v", err)
	}
	if err := moderation.CreateWarn(ctx, NewWarn{GuildID: 42, StaffMemberID: 1, TargetUserID: 2, Reason: "spam"}); err != nil {
		t.Fatalf("create warn: %v", err)
	}

	if err := guilds.Delete(ctx, 42); err != nil {
		t.Fatalf("delete guild: %v", err)
	}

	if n := countRows(t, conn, "guild", "guild_id = ?", 42); n != 0 {
		t.Fatalf("expected guild 42 removed, got %d rows", n)
	}
	if n := countRows(t, conn, "guild", "guild_id = ?", 43); n != 1 {
		t.Fatalf("expected guild 43 kept, got %d rows", n)
	}
	if n := countRows(t, conn, "warn", "guild_id = ?", 42); n != 1 {
		t.Fatalf("expected warn history kept after guild delete, got %d rows", n)
	}
}
