package service

import (
	"sync"

	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/google/uuid"
)

// Pubsub fans registry notifications out to in-process subscribers. Topics
// are notification kinds.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan registry.Notification
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan registry.Notification)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan registry.Notification) (subId string, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan registry.Notification)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId, nil
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

// Publish never blocks: a subscriber whose buffer is full misses the message.
// It returns the number of subscribers that missed it.
func (ps *Pubsub) Publish(topic string, msg registry.Notification) (dropped int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return 0
	}

	for _, ch := range ps.subs[topic] {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	return dropped
}

func (ps *Pubsub) SubscriberCount(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subs[topic])
}
