// Package fanout delivers lifecycle notifications to connected
// listeners. Audiences are EventBus topics: a shared "admins" topic,
// one "vendor:<id>" topic per vendor, and a "global" topic every
// subscription joins. There is no persistence or replay; a listener
// connecting after an event misses it.
package fanout

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: Hub implements domain.EventPublisher.
var _ domain.EventPublisher = (*Hub)(nil)

const (
	topicAdmins = "admins"
	topicGlobal = "global"

	// subscriberBuffer bounds how far a listener may lag before
	// events are dropped for it. Publishing never blocks.
	subscriberBuffer = 16
)

func vendorTopic(id string) string {
	return "vendor:" + id
}

// Notification is a named event with its payload, as delivered to a
// subscription.
type Notification struct {
	Event   string
	Payload any
}

// Hub is the audience registry: a map from topic to the set of active
// subscriptions, with one bus handler per live topic dispatching into
// the set. EventBus identifies handlers by code pointer, so the hub
// registers a single handler per topic rather than one per listener.
type Hub struct {
	bus EventBus.Bus

	mu       sync.Mutex
	subs     map[string]map[*Subscription]struct{}
	handlers map[string]func(Notification)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		bus:      EventBus.New(),
		subs:     make(map[string]map[*Subscription]struct{}),
		handlers: make(map[string]func(Notification)),
	}
}

// SubscribeAdmin joins the admin audience (admins + global topics).
func (h *Hub) SubscribeAdmin() *Subscription {
	return h.subscribe(topicAdmins, topicGlobal)
}

// SubscribeVendor joins a vendor's private audience (vendor:<id> +
// global topics).
func (h *Hub) SubscribeVendor(vendorID string) *Subscription {
	return h.subscribe(vendorTopic(vendorID), topicGlobal)
}

// SubscribeGlobal joins the broadcast audience only.
func (h *Hub) SubscribeGlobal() *Subscription {
	return h.subscribe(topicGlobal)
}

func (h *Hub) subscribe(topics ...string) *Subscription {
	s := &Subscription{
		hub:    h,
		topics: topics,
		ch:     make(chan Notification, subscriberBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	var newTopics []string
	for _, topic := range topics {
		set, ok := h.subs[topic]
		if !ok {
			set = make(map[*Subscription]struct{})
			h.subs[topic] = set
			fn := h.dispatchFunc(topic)
			h.handlers[topic] = fn
			newTopics = append(newTopics, topic)
		}
		set[s] = struct{}{}
	}
	handlers := make([]func(Notification), len(newTopics))
	for i, topic := range newTopics {
		handlers[i] = h.handlers[topic]
	}
	h.mu.Unlock()

	// Bus registration happens outside the hub lock: the bus invokes
	// dispatch handlers under its own lock, and those handlers take
	// the hub lock.
	for i, topic := range newTopics {
		// Subscribe only fails for non-func handlers.
		_ = h.bus.Subscribe(topic, handlers[i])
	}

	return s
}

// dispatchFunc builds the single bus handler for a topic, fanning a
// notification out to every subscription attached to it.
func (h *Hub) dispatchFunc(topic string) func(Notification) {
	return func(n Notification) {
		h.mu.Lock()
		targets := make([]*Subscription, 0, len(h.subs[topic]))
		for s := range h.subs[topic] {
			targets = append(targets, s)
		}
		h.mu.Unlock()

		for _, s := range targets {
			s.deliver(n)
		}
	}
}

// PublishToAdmins delivers an event to the admin audience.
func (h *Hub) PublishToAdmins(_ context.Context, event string, payload any) {
	h.bus.Publish(topicAdmins, Notification{Event: event, Payload: payload})
}

// PublishToVendor delivers an event to a vendor's private audience.
func (h *Hub) PublishToVendor(_ context.Context, vendorID, event string, payload any) {
	h.bus.Publish(vendorTopic(vendorID), Notification{Event: event, Payload: payload})
}

// PublishGlobal delivers an event to every connected listener.
func (h *Hub) PublishGlobal(_ context.Context, event string, payload any) {
	h.bus.Publish(topicGlobal, Notification{Event: event, Payload: payload})
}

// Subscription is one connected listener's handle. Events arrive on a
// buffered channel; Done is closed when the subscription is closed.
type Subscription struct {
	hub       *Hub
	topics    []string
	ch        chan Notification
	done      chan struct{}
	closeOnce sync.Once
}

// Events returns the notification channel. It is never closed; select
// on Done or a request context to stop consuming.
func (s *Subscription) Events() <-chan Notification {
	return s.ch
}

// Done is closed when the subscription has been detached.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// deliver hands a notification to the listener without ever blocking
// the publisher: a full buffer drops the event for this listener.
func (s *Subscription) deliver(n Notification) {
	select {
	case s.ch <- n:
	default:
	}
}

// Close detaches the subscription from all its topics, dropping empty
// topics from the bus. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.mu.Lock()
		var emptied []string
		for _, topic := range s.topics {
			set := s.hub.subs[topic]
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.subs, topic)
				emptied = append(emptied, topic)
			}
		}
		handlers := make([]func(Notification), len(emptied))
		for i, topic := range emptied {
			handlers[i] = s.hub.handlers[topic]
			delete(s.hub.handlers, topic)
		}
		s.hub.mu.Unlock()

		for i, topic := range emptied {
			_ = s.hub.bus.Unsubscribe(topic, handlers[i])
		}

		close(s.done)
	})
}
