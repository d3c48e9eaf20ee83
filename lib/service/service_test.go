package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/getAlby/votehub.go/lib"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *RegistryService {
	t.Helper()
	svc := &RegistryService{
		Config: &Config{RegistryOwner: "owner"},
		Logger: lib.Logger(""),
	}
	require.NoError(t, svc.InitRegistry(context.Background()))
	return svc
}

func TestInitRegistryWithoutDatabase(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, "owner", svc.Owner())
	assert.Equal(t, 0, svc.EventCount())
	assert.NotNil(t, svc.NotificationPubSub)
}

func TestInitRegistryAppliesLimits(t *testing.T) {
	svc := &RegistryService{
		Config: &Config{RegistryOwner: "owner", MaxTitleLength: 3},
		Logger: lib.Logger(""),
	}
	require.NoError(t, svc.InitRegistry(context.Background()))

	_, err := svc.AddEvent(context.Background(), registry.CallContext{Caller: "alice"}, "too long", registry.NewBudget(1), "")
	assert.ErrorIs(t, err, registry.ErrInvalidEvent)
}

func TestSubscribeEventsAndVotes(t *testing.T) {
	svc := newTestService(t)
	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, votes, err := svc.SubscribeEventsAndVotes(subCtx)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = svc.AddEvent(ctx, registry.CallContext{Caller: "alice"}, "Launch", registry.NewBudget(5), "")
	require.NoError(t, err)
	require.NoError(t, svc.AddVote(ctx, registry.CallContext{Caller: "bob"}, 0))

	select {
	case n := <-events:
		assert.Equal(t, registry.NotificationEventAdded, n.Kind)
		assert.Equal(t, "alice", n.Caller)
	case <-time.After(time.Second):
		t.Fatal("no event notification")
	}
	select {
	case n := <-votes:
		assert.Equal(t, registry.NotificationVoteSubmitted, n.Kind)
		assert.Equal(t, "bob", n.Caller)
		assert.Equal(t, int64(1), n.Event.TotalVotes)
	case <-time.After(time.Second):
		t.Fatal("no vote notification")
	}
}

func TestEncodeNotification(t *testing.T) {
	svc := newTestService(t)
	event := registry.NewEvent(0, "Launch", registry.NewBudget(5), "", "alice", time.Now().UTC())

	var buf bytes.Buffer
	err := svc.EncodeNotification(context.Background(), &buf, registry.Notification{
		Kind:    registry.NotificationEventAdded,
		EventID: 0,
		Caller:  "alice",
		Event:   event,
	})
	require.NoError(t, err)

	payload := NotificationPayload{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "owner", payload.Owner)
	assert.Equal(t, "Launch", payload.Event.Title)
	assert.Equal(t, "5", payload.Event.EstimatedBudget.String())
}

func TestStartNotificationPublisherWithoutRabbitMQ(t *testing.T) {
	svc := newTestService(t)
	assert.NoError(t, svc.StartNotificationPublisher(context.Background()))
}

func TestSubscribeEventsAndVotesUnsubscribesWhenDone(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	events, votes, err := svc.SubscribeEventsAndVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.NotificationPubSub.SubscriberCount(registry.NotificationEventAdded))
	assert.Equal(t, 1, svc.NotificationPubSub.SubscriberCount(registry.NotificationVoteSubmitted))

	cancel()
	assert.Eventually(t, func() bool {
		return svc.NotificationPubSub.SubscriberCount(registry.NotificationEventAdded) == 0 &&
			svc.NotificationPubSub.SubscriberCount(registry.NotificationVoteSubmitted) == 0
	}, time.Second, 10*time.Millisecond)
	_, open := <-events
	assert.False(t, open)
	_, open = <-votes
	assert.False(t, open)

	// registry writes keep working without subscribers
	_, err = svc.AddEvent(context.Background(), registry.CallContext{Caller: "alice"}, "Launch", registry.NewBudget(1), "")
	assert.NoError(t, err)
}
