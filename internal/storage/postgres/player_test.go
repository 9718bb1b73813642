package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/lantern/internal/game/player"
	"github.com/rowanvale/lantern/internal/storage/postgres"
	"github.com/rowanvale/lantern/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func testPlayer(name string) *player.Player {
	p := player.New(name, "ROOM_001", player.Defaults{BaseHP: 30, BaseMP: 10, BaseStat: 5})
	p.AddItem(player.Item{ID: "brass_lantern", Name: "brass lantern", Quantity: 1,
		Equippable: true, Slot: player.SlotLightSource})
	p.Flags["met_hermit"] = true
	p.MarkVisited("ROOM_001")
	return p
}

func TestAccountRepository_CreateAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewAccountRepository(pc.RawPool)
	ctx := context.Background()

	username := uniqueName("traveler")
	acct, err := repo.Create(ctx, username, "hunter2hunter2")
	require.NoError(t, err)
	assert.NotZero(t, acct.ID)
	assert.Equal(t, username, acct.Username)

	_, err = repo.Create(ctx, username, "other")
	assert.ErrorIs(t, err, postgres.ErrAccountExists)

	got, err := repo.Authenticate(ctx, username, "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)

	_, err = repo.Authenticate(ctx, username, "wrong")
	assert.ErrorIs(t, err, postgres.ErrInvalidCredentials)

	_, err = repo.Authenticate(ctx, uniqueName("nobody"), "irrelevant")
	assert.ErrorIs(t, err, postgres.ErrAccountNotFound)
}

func TestPlayerRepository_SaveLoadRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	accounts := postgres.NewAccountRepository(pc.RawPool)
	players := postgres.NewPlayerRepository(pc.RawPool)
	ctx := context.Background()

	acct, err := accounts.Create(ctx, uniqueName("saver"), "password1")
	require.NoError(t, err)

	_, err = players.Load(ctx, acct.ID)
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)

	original := testPlayer("Saver")
	require.NoError(t, players.Save(ctx, acct.ID, original))

	loaded, err := players.Load(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Location, loaded.Location)
	assert.Equal(t, original.Inventory, loaded.Inventory)
	assert.Equal(t, original.Flags, loaded.Flags)
	assert.Equal(t, original.VisitedRooms, loaded.VisitedRooms)
}

func TestPlayerRepository_SaveOverwrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	accounts := postgres.NewAccountRepository(pc.RawPool)
	players := postgres.NewPlayerRepository(pc.RawPool)
	ctx := context.Background()

	acct, err := accounts.Create(ctx, uniqueName("mover"), "password1")
	require.NoError(t, err)

	p := testPlayer("Mover")
	require.NoError(t, players.Save(ctx, acct.ID, p))

	p.Location = "ROOM_002"
	p.MarkVisited("ROOM_002")
	require.NoError(t, players.Save(ctx, acct.ID, p))

	loaded, err := players.Load(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "ROOM_002", loaded.Location)
	assert.Contains(t, loaded.VisitedRooms, "ROOM_002")
}
