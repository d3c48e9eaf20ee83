package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func asCaller(identity string) CallContext {
	return CallContext{Caller: identity, Now: testTime}
}

func TestNewRegistryIsEmpty(t *testing.T) {
	r := New("alice")
	assert.Equal(t, 0, r.EventCount())
	assert.Equal(t, "alice", r.Owner())
	assert.Empty(t, r.ListEvents())
}

func TestAddEvent(t *testing.T) {
	r := New("alice")
	ctx := context.Background()

	added, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)
	assert.Equal(t, int64(0), added.ID)
	assert.Equal(t, 1, r.EventCount())

	events := r.ListEvents()
	require.Len(t, events, 1)
	assert.Equal(t, int64(0), events[0].ID)
	assert.Equal(t, "Art Show", events[0].Title)
	assert.Equal(t, "desc", events[0].Description)
	assert.Equal(t, "200", events[0].EstimatedBudget.String())
	assert.Equal(t, "alice", events[0].Creator)
	assert.Equal(t, testTime, events[0].CreatedAt)
	assert.Equal(t, int64(0), events[0].TotalVotes)
	assert.Equal(t, []string{}, events[0].Votes)
}

func TestAddVoteCountsEveryCall(t *testing.T) {
	r := New("alice")
	ctx := context.Background()
	_, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)

	require.NoError(t, r.AddVote(ctx, asCaller("bob"), 0))
	total, err := r.GetTotalVotes(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"bob"}, r.ListEvents()[0].Votes)

	// repeat votes by the same identity are counted
	require.NoError(t, r.AddVote(ctx, asCaller("bob"), 0))
	total, err = r.GetTotalVotes(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"bob", "bob"}, r.ListEvents()[0].Votes)

	// creators may vote on their own event
	require.NoError(t, r.AddVote(ctx, asCaller("alice"), 0))
	event, err := r.GetEvent(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), event.TotalVotes)
}

func TestOutOfRangeIsRejected(t *testing.T) {
	ctx := context.Background()
	r := New("alice")

	err := r.AddVote(ctx, asCaller("bob"), 0)
	assert.ErrorIs(t, err, ErrEventNotFound)
	_, err = r.GetTotalVotes(0)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Equal(t, 0, r.EventCount())

	_, err = r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)

	for _, id := range []int64{1, 5, -1} {
		t.Run(fmt.Sprintf("id %d", id), func(t *testing.T) {
			err := r.AddVote(ctx, asCaller("bob"), id)
			assert.ErrorIs(t, err, ErrEventNotFound)
			_, err = r.GetTotalVotes(id)
			assert.ErrorIs(t, err, ErrEventNotFound)
			_, err = r.GetEvent(id)
			assert.ErrorIs(t, err, ErrEventNotFound)
		})
	}
	assert.Equal(t, 1, r.EventCount())
	assert.Equal(t, int64(0), r.ListEvents()[0].TotalVotes)
}

func TestListEventsIsASnapshot(t *testing.T) {
	ctx := context.Background()
	r := New("alice")
	_, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)
	require.NoError(t, r.AddVote(ctx, asCaller("bob"), 0))

	first := r.ListEvents()
	second := r.ListEvents()
	assert.Equal(t, first, second)

	first[0].Votes[0] = "mallory"
	first[0].TotalVotes = 42
	assert.Equal(t, []string{"bob"}, r.ListEvents()[0].Votes)
	assert.Equal(t, int64(1), r.ListEvents()[0].TotalVotes)
}

func TestIdsMatchPositions(t *testing.T) {
	ctx := context.Background()
	r := New("alice")
	for i := 0; i < 10; i++ {
		_, err := r.AddEvent(ctx, asCaller("alice"), fmt.Sprintf("event %d", i), NewBudget(uint64(i)), "")
		require.NoError(t, err)
		assert.Equal(t, i+1, r.EventCount())
	}
	for i, e := range r.ListEvents() {
		assert.Equal(t, int64(i), e.ID)
	}
}

func TestConcurrentWritersKeepInvariants(t *testing.T) {
	ctx := context.Background()
	r := New("alice")
	for i := 0; i < 4; i++ {
		_, err := r.AddEvent(ctx, asCaller("alice"), "event", NewBudget(1), "")
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				voter := fmt.Sprintf("voter-%d", w)
				assert.NoError(t, r.AddVote(ctx, asCaller(voter), int64(i%4)))
				if i%10 == 0 {
					_, err := r.AddEvent(ctx, asCaller(voter), "more", NewBudget(2), "")
					assert.NoError(t, err)
				}
				for _, e := range r.ListEvents() {
					assert.Equal(t, e.TotalVotes, int64(len(e.Votes)))
				}
			}
		}(w)
	}
	wg.Wait()

	var total int64
	for i, e := range r.ListEvents() {
		assert.Equal(t, int64(i), e.ID)
		assert.Equal(t, e.TotalVotes, int64(len(e.Votes)))
		total += e.TotalVotes
	}
	assert.Equal(t, int64(800), total)
	assert.Equal(t, 4+80, r.EventCount())
}

func TestCreatedAtNeverGoesBackwards(t *testing.T) {
	ctx := context.Background()
	r := New("alice", WithClock(fixedClock{testTime}))

	first, err := r.AddEvent(ctx, CallContext{Caller: "alice"}, "first", NewBudget(1), "")
	require.NoError(t, err)
	assert.Equal(t, testTime, first.CreatedAt)

	earlier := CallContext{Caller: "alice", Now: testTime.Add(-time.Hour)}
	second, err := r.AddEvent(ctx, earlier, "second", NewBudget(1), "")
	require.NoError(t, err)
	assert.Equal(t, testTime, second.CreatedAt)
}

func TestLimits(t *testing.T) {
	ctx := context.Background()
	r := New("alice", WithLimits(Limits{MaxTitleLength: 5, MaxDescriptionLength: 3}))

	_, err := r.AddEvent(ctx, asCaller("alice"), "too long", NewBudget(1), "")
	assert.ErrorIs(t, err, ErrInvalidEvent)
	_, err = r.AddEvent(ctx, asCaller("alice"), "short", NewBudget(1), "long")
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, 0, r.EventCount())

	_, err = r.AddEvent(ctx, asCaller("alice"), "ok", NewBudget(1), "ok")
	assert.NoError(t, err)
}

func TestRecordVoteOverflow(t *testing.T) {
	e := NewEvent(0, "t", NewBudget(1), "d", "alice", testTime)
	e.TotalVotes = 1<<63 - 1
	err := e.RecordVote("bob")
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Empty(t, e.Votes)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	r := New("alice", WithNotifier(notifier))

	_, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)
	require.NoError(t, r.AddVote(ctx, asCaller("bob"), 0))
	assert.Error(t, r.AddVote(ctx, asCaller("bob"), 3))

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, NotificationEventAdded, notifier.sent[0].Kind)
	assert.Equal(t, "alice", notifier.sent[0].Caller)
	assert.Equal(t, NotificationVoteSubmitted, notifier.sent[1].Kind)
	assert.Equal(t, "bob", notifier.sent[1].Caller)
	assert.Equal(t, int64(1), notifier.sent[1].Event.TotalVotes)
}

type failingStore struct {
	memoryStore
	failEvents bool
	failVotes  bool
}

func (s *failingStore) InsertEvent(ctx context.Context, e Event) error {
	if s.failEvents {
		return errors.New("disk full")
	}
	return s.memoryStore.InsertEvent(ctx, e)
}

func (s *failingStore) InsertVote(ctx context.Context, id int64, voter string, at time.Time) error {
	if s.failVotes {
		return errors.New("disk full")
	}
	return s.memoryStore.InsertVote(ctx, id, voter, at)
}

// memoryStore keeps persisted rows the way a database would.
type memoryStore struct {
	owner  string
	events []Event
}

func (s *memoryStore) LoadRegistry(context.Context) (string, []Event, error) {
	events := make([]Event, len(s.events))
	for i, e := range s.events {
		events[i] = e.Clone()
	}
	return s.owner, events, nil
}

func (s *memoryStore) SaveOwner(_ context.Context, owner string) error {
	s.owner = owner
	return nil
}

func (s *memoryStore) InsertEvent(_ context.Context, e Event) error {
	s.events = append(s.events, e.Clone())
	return nil
}

func (s *memoryStore) InsertVote(_ context.Context, id int64, voter string, _ time.Time) error {
	return s.events[id].RecordVote(voter)
}

func TestStoreFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	notifier := &recordingNotifier{}
	r := New("alice", WithStore(store), WithNotifier(notifier))
	require.NoError(t, r.Load(ctx))

	_, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)

	store.failVotes = true
	assert.Error(t, r.AddVote(ctx, asCaller("bob"), 0))
	total, err := r.GetTotalVotes(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	store.failEvents = true
	_, err = r.AddEvent(ctx, asCaller("alice"), "Second", NewBudget(1), "")
	assert.Error(t, err)
	assert.Equal(t, 1, r.EventCount())
	assert.Len(t, notifier.sent, 1)
}

func TestLoadRestoresState(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	r := New("alice", WithStore(store))
	require.NoError(t, r.Load(ctx))
	assert.Equal(t, "alice", store.owner)

	_, err := r.AddEvent(ctx, asCaller("alice"), "Art Show", NewBudget(200), "desc")
	require.NoError(t, err)
	require.NoError(t, r.AddVote(ctx, asCaller("bob"), 0))

	// a restart with a different configured owner keeps the persisted one
	restarted := New("carol", WithStore(store))
	require.NoError(t, restarted.Load(ctx))
	assert.Equal(t, "alice", restarted.Owner())
	assert.Equal(t, r.ListEvents(), restarted.ListEvents())
}

func TestLoadRejectsCorruptState(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{owner: "alice", events: []Event{
		{ID: 0, TotalVotes: 2, Votes: []string{"bob"}},
	}}
	r := New("alice", WithStore(store))
	assert.ErrorIs(t, r.Load(ctx), ErrCorruptState)

	store.events = []Event{{ID: 1, Votes: []string{}}}
	assert.ErrorIs(t, r.Load(ctx), ErrCorruptState)
}
