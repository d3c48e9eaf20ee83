package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/getAlby/votehub.go/db"
	"github.com/getAlby/votehub.go/db/migrations"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	c := &service.Config{
		DatabaseUri: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	dbConn, err := db.Open(c)
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })

	_, err = migrations.Migrate(context.Background(), dbConn)
	require.NoError(t, err)
	return dbConn
}

func TestBunStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := service.NewBunStore(openTestDB(t))

	reg := registry.New("owner", registry.WithStore(store))
	require.NoError(t, reg.Load(ctx))

	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	_, err := reg.AddEvent(ctx, registry.CallContext{Caller: "alice", Now: at}, "Launch", registry.NewBudget(1000), "party")
	require.NoError(t, err)
	maxBudget, err := registry.ParseBudget("340282366920938463463374607431768211455")
	require.NoError(t, err)
	_, err = reg.AddEvent(ctx, registry.CallContext{Caller: "bob", Now: at.Add(time.Minute)}, "Moon", maxBudget, "")
	require.NoError(t, err)

	require.NoError(t, reg.AddVote(ctx, registry.CallContext{Caller: "bob", Now: at}, 0))
	require.NoError(t, reg.AddVote(ctx, registry.CallContext{Caller: "carol", Now: at}, 0))
	require.NoError(t, reg.AddVote(ctx, registry.CallContext{Caller: "bob", Now: at}, 0))
	require.NoError(t, reg.AddVote(ctx, registry.CallContext{Caller: "alice", Now: at}, 1))

	restored := registry.New("someone else", registry.WithStore(store))
	require.NoError(t, restored.Load(ctx))

	assert.Equal(t, "owner", restored.Owner())
	assert.Equal(t, reg.EventCount(), restored.EventCount())
	events := restored.ListEvents()
	require.Len(t, events, 2)
	assert.Equal(t, []string{"bob", "carol", "bob"}, events[0].Votes)
	assert.Equal(t, int64(3), events[0].TotalVotes)
	assert.Equal(t, "alice", events[0].Creator)
	assert.True(t, events[0].CreatedAt.Equal(at))
	assert.True(t, events[1].EstimatedBudget.Equal(maxBudget))
	assert.Equal(t, []string{"alice"}, events[1].Votes)
}

func TestBunStoreLoadEmpty(t *testing.T) {
	store := service.NewBunStore(openTestDB(t))

	owner, events, err := store.LoadRegistry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", owner)
	assert.Empty(t, events)
}

func TestBunStoreInsertVoteUnknownEvent(t *testing.T) {
	ctx := context.Background()
	store := service.NewBunStore(openTestDB(t))

	err := store.InsertVote(ctx, 7, "alice", time.Now())
	assert.Error(t, err)

	_, events, err := store.LoadRegistry(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBunStoreDuplicateEventIsRejected(t *testing.T) {
	ctx := context.Background()
	store := service.NewBunStore(openTestDB(t))

	event := registry.NewEvent(0, "Launch", registry.NewBudget(1), "", "alice", time.Now().UTC())
	require.NoError(t, store.InsertEvent(ctx, event))
	assert.Error(t, store.InsertEvent(ctx, event))
}

func TestBunStoreLoadReadOnly(t *testing.T) {
	ctx := context.Background()
	store := service.NewBunStore(openTestDB(t))

	empty, err := store.LoadReadOnly(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", empty.Owner())
	assert.Equal(t, 0, empty.EventCount())
	owner, _, err := store.LoadRegistry(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", owner, "read only load must not persist an owner")

	reg := registry.New("owner", registry.WithStore(store))
	require.NoError(t, reg.Load(ctx))
	_, err = reg.AddEvent(ctx, registry.CallContext{Caller: "alice"}, "Launch", registry.NewBudget(3), "")
	require.NoError(t, err)
	require.NoError(t, reg.AddVote(ctx, registry.CallContext{Caller: "bob"}, 0))

	restored, err := store.LoadReadOnly(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner", restored.Owner())

	// writes to the restored registry stay in memory
	_, err = restored.AddEvent(ctx, registry.CallContext{Caller: "carol"}, "Local", registry.NewBudget(1), "")
	require.NoError(t, err)
	_, events, err := store.LoadRegistry(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"bob"}, events[0].Votes)
}
