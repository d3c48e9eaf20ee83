package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getAlby/votehub.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const notificationBufferSize = 100

type RegistryService struct {
	Config             *Config
	DB                 *bun.DB
	Logger             *lecho.Logger
	Registry           *registry.Registry
	NotificationPubSub *Pubsub
	RabbitMQClient     rabbitmq.Client
}

// InitRegistry builds the registry, backed by the database when one is
// configured, and restores its persisted state.
func (svc *RegistryService) InitRegistry(ctx context.Context) error {
	if svc.NotificationPubSub == nil {
		svc.NotificationPubSub = NewPubsub()
	}
	options := []registry.Option{
		registry.WithNotifier(registry.Notifiers{
			registry.NotifierFunc(svc.logNotification),
			registry.NotifierFunc(svc.publishNotification),
		}),
		registry.WithLimits(registry.Limits{
			MaxTitleLength:       svc.Config.MaxTitleLength,
			MaxDescriptionLength: svc.Config.MaxDescriptionLength,
		}),
	}
	if svc.DB != nil {
		options = append(options, registry.WithStore(NewBunStore(svc.DB)))
	}
	svc.Registry = registry.New(svc.Config.RegistryOwner, options...)
	if err := svc.Registry.Load(ctx); err != nil {
		return err
	}
	if owner := svc.Registry.Owner(); owner != svc.Config.RegistryOwner {
		svc.Logger.Warnf("Configured registry owner %s differs from the persisted owner %s, keeping %s", svc.Config.RegistryOwner, owner, owner)
	}
	svc.Logger.Infof("Registry loaded with %d events", svc.Registry.EventCount())
	return nil
}

func (svc *RegistryService) AddEvent(ctx context.Context, call registry.CallContext, title string, budget registry.Budget, description string) (registry.Event, error) {
	return svc.Registry.AddEvent(ctx, call, title, budget, description)
}

func (svc *RegistryService) ListEvents() []registry.Event {
	return svc.Registry.ListEvents()
}

func (svc *RegistryService) EventCount() int {
	return svc.Registry.EventCount()
}

func (svc *RegistryService) GetEvent(id int64) (registry.Event, error) {
	return svc.Registry.GetEvent(id)
}

func (svc *RegistryService) AddVote(ctx context.Context, call registry.CallContext, id int64) error {
	return svc.Registry.AddVote(ctx, call, id)
}

func (svc *RegistryService) GetTotalVotes(id int64) (int64, error) {
	return svc.Registry.GetTotalVotes(id)
}

func (svc *RegistryService) Owner() string {
	return svc.Registry.Owner()
}

func (svc *RegistryService) Snapshot() registry.Snapshot {
	return svc.Registry.Snapshot()
}

func (svc *RegistryService) logNotification(_ context.Context, n registry.Notification) {
	switch n.Kind {
	case registry.NotificationEventAdded:
		svc.Logger.Infof("Added a new event! [event_id:%d] [creator:%s]", n.EventID, n.Caller)
	case registry.NotificationVoteSubmitted:
		svc.Logger.Infof("Vote submitted successfully for this event! [event_id:%d] [voter:%s] [total_votes:%d]", n.EventID, n.Caller, n.Event.TotalVotes)
	}
}

func (svc *RegistryService) publishNotification(_ context.Context, n registry.Notification) {
	if svc.NotificationPubSub.SubscriberCount(n.Kind) == 0 {
		return
	}
	if dropped := svc.NotificationPubSub.Publish(n.Kind, n); dropped > 0 {
		svc.Logger.Warnf("Notification %s for event %d dropped by %d subscribers", n.Kind, n.EventID, dropped)
	}
}

// SubscribeEventsAndVotes is passed to the rabbitmq publisher. Both
// subscriptions are removed and their channels closed once ctx is done.
func (svc *RegistryService) SubscribeEventsAndVotes(ctx context.Context) (events chan registry.Notification, votes chan registry.Notification, err error) {
	events = make(chan registry.Notification, notificationBufferSize)
	votes = make(chan registry.Notification, notificationBufferSize)
	eventSubId, err := svc.NotificationPubSub.Subscribe(registry.NotificationEventAdded, events)
	if err != nil {
		return nil, nil, err
	}
	voteSubId, err := svc.NotificationPubSub.Subscribe(registry.NotificationVoteSubmitted, votes)
	if err != nil {
		svc.NotificationPubSub.Unsubscribe(eventSubId, registry.NotificationEventAdded)
		return nil, nil, err
	}
	go func() {
		<-ctx.Done()
		svc.NotificationPubSub.Unsubscribe(eventSubId, registry.NotificationEventAdded)
		svc.NotificationPubSub.Unsubscribe(voteSubId, registry.NotificationVoteSubmitted)
	}()
	return events, votes, nil
}

type NotificationPayload struct {
	Kind    string         `json:"kind"`
	EventID int64          `json:"event_id"`
	Caller  string         `json:"caller"`
	Owner   string         `json:"owner"`
	Event   registry.Event `json:"event"`
}

func (svc *RegistryService) EncodeNotification(ctx context.Context, w io.Writer, n registry.Notification) error {
	err := json.NewEncoder(w).Encode(NotificationPayload{
		Kind:    n.Kind,
		EventID: n.EventID,
		Caller:  n.Caller,
		Owner:   svc.Registry.Owner(),
		Event:   n.Event,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return nil
}
