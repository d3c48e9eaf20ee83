package registry

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
	"unicode/utf8"
)

// Limits are optional checks on new events. A zero field disables the check.
type Limits struct {
	MaxTitleLength       int
	MaxDescriptionLength int
}

// Registry owns every Event. The position of an event in the registry is
// its id, so events are never removed or reordered.
//
// Mutations hold the write lock for the whole operation, including the
// store write, so readers never see a half-applied change.
type Registry struct {
	mu     sync.RWMutex
	owner  string
	events []Event
	last   time.Time

	store    Store
	notifier Notifier
	clock    Clock
	limits   Limits
}

type Option = func(r *Registry)

func WithStore(store Store) Option {
	return func(r *Registry) {
		r.store = store
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(r *Registry) {
		r.notifier = notifier
	}
}

func WithClock(clock Clock) Option {
	return func(r *Registry) {
		r.clock = clock
	}
}

func WithLimits(limits Limits) Option {
	return func(r *Registry) {
		r.limits = limits
	}
}

func New(owner string, options ...Option) *Registry {
	r := &Registry{
		owner:    owner,
		events:   []Event{},
		notifier: nopNotifier{},
		clock:    SystemClock{},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Load replaces the in-memory state with the one held by the store. A store
// that has never seen an owner is initialized with the registry's owner;
// otherwise the persisted owner wins.
func (r *Registry) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, events, err := r.store.LoadRegistry(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := checkInvariants(events); err != nil {
		return err
	}
	if owner == "" {
		if err := r.store.SaveOwner(ctx, r.owner); err != nil {
			return fmt.Errorf("save owner: %w", err)
		}
	} else {
		r.owner = owner
	}
	r.events = events
	r.last = time.Time{}
	for _, e := range events {
		if e.CreatedAt.After(r.last) {
			r.last = e.CreatedAt
		}
	}
	return nil
}

func checkInvariants(events []Event) error {
	for i, e := range events {
		if e.ID != int64(i) {
			return fmt.Errorf("%w: event at position %d has id %d", ErrCorruptState, i, e.ID)
		}
		if !e.consistent() {
			return fmt.Errorf("%w: event %d has total_votes %d but %d votes", ErrCorruptState, e.ID, e.TotalVotes, len(e.Votes))
		}
	}
	return nil
}

func (r *Registry) Owner() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// AddEvent appends a new event created by call.Caller. Its id is the number
// of events stored before it.
func (r *Registry) AddEvent(ctx context.Context, call CallContext, title string, budget Budget, description string) (Event, error) {
	if err := r.validate(title, description); err != nil {
		return Event{}, err
	}

	r.mu.Lock()
	count := int64(len(r.events))
	if count == math.MaxInt64 {
		r.mu.Unlock()
		return Event{}, fmt.Errorf("event id: %w", ErrOverflow)
	}
	now := r.timestamp(call.Now)
	event := NewEvent(count, title, budget, description, call.Caller, now)
	if r.store != nil {
		if err := r.store.InsertEvent(ctx, event); err != nil {
			r.mu.Unlock()
			return Event{}, fmt.Errorf("insert event %d: %w", event.ID, err)
		}
	}
	r.events = append(r.events, event)
	r.last = now
	added := event.Clone()
	r.mu.Unlock()

	r.notifier.Notify(ctx, Notification{
		Kind:    NotificationEventAdded,
		EventID: added.ID,
		Caller:  call.Caller,
		Event:   added,
		At:      now,
	})
	return added, nil
}

func (r *Registry) validate(title, description string) error {
	if r.limits.MaxTitleLength > 0 && utf8.RuneCountInString(title) > r.limits.MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidEvent, r.limits.MaxTitleLength)
	}
	if r.limits.MaxDescriptionLength > 0 && utf8.RuneCountInString(description) > r.limits.MaxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidEvent, r.limits.MaxDescriptionLength)
	}
	return nil
}

// timestamp never goes back in time relative to the previous event.
func (r *Registry) timestamp(now time.Time) time.Time {
	if now.IsZero() {
		now = r.clock.Now()
	}
	if now.Before(r.last) {
		return r.last
	}
	return now
}

// ListEvents returns a copy of all events in insertion order.
func (r *Registry) ListEvents() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]Event, len(r.events))
	for i, e := range r.events {
		events[i] = e.Clone()
	}
	return events
}

func (r *Registry) EventCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

func (r *Registry) GetEvent(id int64) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, err := r.lookup(id)
	if err != nil {
		return Event{}, err
	}
	return event.Clone(), nil
}

// AddVote records one vote by call.Caller on event id.
func (r *Registry) AddVote(ctx context.Context, call CallContext, id int64) error {
	r.mu.Lock()
	event, err := r.lookup(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if event.TotalVotes == math.MaxInt64 {
		r.mu.Unlock()
		return fmt.Errorf("event %d: %w", id, ErrOverflow)
	}
	now := call.Now
	if now.IsZero() {
		now = r.clock.Now()
	}
	if r.store != nil {
		if err := r.store.InsertVote(ctx, id, call.Caller, now); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("insert vote for event %d: %w", id, err)
		}
	}
	if err := event.RecordVote(call.Caller); err != nil {
		r.mu.Unlock()
		return err
	}
	voted := event.Clone()
	r.mu.Unlock()

	r.notifier.Notify(ctx, Notification{
		Kind:    NotificationVoteSubmitted,
		EventID: id,
		Caller:  call.Caller,
		Event:   voted,
		At:      now,
	})
	return nil
}

func (r *Registry) GetTotalVotes(id int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return event.TotalVotes, nil
}

// lookup must be called with the lock held.
func (r *Registry) lookup(id int64) (*Event, error) {
	if id < 0 || id >= int64(len(r.events)) {
		return nil, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
	}
	return &r.events[id], nil
}
