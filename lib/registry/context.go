package registry

import (
	"context"
	"time"
)

// CallContext carries what the host knows about a call: who is calling
// and when.
type CallContext struct {
	Caller string
	Now    time.Time
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

const (
	NotificationEventAdded    = "event.added"
	NotificationVoteSubmitted = "vote.submitted"
)

// Notification is advisory. Delivery failures never affect registry state.
// Notifications are sent after the registry lock is released, so concurrent
// writes may deliver them out of order; Event.TotalVotes is the count right
// after the write that produced the notification.
type Notification struct {
	Kind    string    `json:"kind"`
	EventID int64     `json:"event_id"`
	Caller  string    `json:"caller"`
	Event   Event     `json:"event"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Notifiers fans a notification out to every member in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notification) {
	for _, notifier := range ns {
		notifier.Notify(ctx, n)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

// Store persists registry mutations. A write must be durable when it
// returns nil; the registry applies the change in memory only afterwards.
type Store interface {
	LoadRegistry(ctx context.Context) (owner string, events []Event, err error)
	SaveOwner(ctx context.Context, owner string) error
	InsertEvent(ctx context.Context, event Event) error
	InsertVote(ctx context.Context, eventID int64, voter string, at time.Time) error
}
