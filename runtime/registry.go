// Package runtime handles subscription tracking and event propagation.
// It orchestrates delivery to viewer connections without containing any
// scoring or match rules.
package runtime

import (
	"sync"

	"scorecast/contract"
	"scorecast/domain"
)

type set map[string]struct{}

// Registry maps topics to the connections subscribed to them, and each
// connection back to its topics so a disconnect cleans up in one call.
// State is purely in-memory: after a restart clients re-join on reconnect.
type Registry struct {
	mu         sync.RWMutex
	sinks      map[string]contract.EventSink // connection id -> transport sink
	topicConns map[domain.Topic]set          // topic -> member connection ids
	connTopics map[string]map[domain.Topic]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:      make(map[string]contract.EventSink),
		topicConns: make(map[domain.Topic]set),
		connTopics: make(map[string]map[domain.Topic]struct{}),
	}
}

// Join subscribes a connection to a topic. Joining an already-joined pair
// is a no-op; the sink of the first registration stays in place.
func (r *Registry) Join(connID string, topic domain.Topic, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[connID]; !ok {
		r.sinks[connID] = sink
	}
	if _, ok := r.topicConns[topic]; !ok {
		r.topicConns[topic] = make(set)
	}
	r.topicConns[topic][connID] = struct{}{}

	if _, ok := r.connTopics[connID]; !ok {
		r.connTopics[connID] = make(map[domain.Topic]struct{})
	}
	r.connTopics[connID][topic] = struct{}{}
}

// Leave unsubscribes a connection from one topic. Leaving a topic the
// connection never joined is a no-op. Empty sets are removed so the maps
// don't grow with dead topics over time.
func (r *Registry) Leave(connID string, topic domain.Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, topic)
}

func (r *Registry) leaveLocked(connID string, topic domain.Topic) {
	if members, ok := r.topicConns[topic]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.topicConns, topic)
		}
	}
	if topics, ok := r.connTopics[connID]; ok {
		delete(topics, topic)
		if len(topics) == 0 {
			delete(r.connTopics, connID)
			delete(r.sinks, connID)
		}
	}
}

// DropConnection removes the connection from every topic it was in.
// Called on transport disconnect; never fails, even for a connection that
// was never registered.
func (r *Registry) DropConnection(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for topic := range r.connTopics[connID] {
		r.leaveLocked(connID, topic)
	}
	delete(r.connTopics, connID)
	delete(r.sinks, connID)
}

// SinksFor returns the current subscribers of a topic, keyed by connection
// id. Unknown topics yield an empty map, not an error. The result is a
// copy; the dispatcher iterates it outside the registry lock.
func (r *Registry) SinksFor(topic domain.Topic) map[string]contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.topicConns[topic]
	out := make(map[string]contract.EventSink, len(members))
	for connID := range members {
		if sink, ok := r.sinks[connID]; ok {
			out[connID] = sink
		}
	}
	return out
}
