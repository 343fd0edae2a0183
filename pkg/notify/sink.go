// Package notify implements the fire-and-forget notification channel used
// to push configuration changes toward the bot process. Publishing gives no
// delivery guarantee: events for disconnected subscribers are lost, and the
// subscriber is expected to read through the database as the source of
// truth. The channel is a latency optimization, not a consistency
// mechanism.
package notify

import (
	"sync"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/mqtt"
)

// EventConfigUpdated is broadcast whenever a guild configuration changes.
const EventConfigUpdated = "guild:config:updated"

// Sink receives published events. Implementations must not block the
// caller; a publish is fire-and-forget.
type Sink interface {
	Publish(event string, payload interface{})
}

// MultiSink fans a publish out to several sinks.
type MultiSink []Sink

// Publish forwards the event to every sink
func (m MultiSink) Publish(event string, payload interface{}) {
	for _, sink := range m {
		sink.Publish(event, payload)
	}
}

// MemorySink records published events for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []MemoryEvent
}

// MemoryEvent is one recorded publish
type MemoryEvent struct {
	Event   string
	Payload interface{}
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Publish records the event
func (m *MemorySink) Publish(event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, MemoryEvent{Event: event, Payload: payload})
}

// Events returns a copy of the recorded events
func (m *MemorySink) Events() []MemoryEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MemoryEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MQTTSink publishes events onto the broker the bot already listens to.
type MQTTSink struct {
	comm   *mqtt.Communicator
	prefix string
}

// NewMQTTSink creates a sink publishing under prefix ("pancydash" by
// convention), one topic per event name with ':' mapped to '/'.
func NewMQTTSink(comm *mqtt.Communicator, prefix string) *MQTTSink {
	return &MQTTSink{comm: comm, prefix: prefix}
}

// Publish sends the payload to the event's topic; failures are logged and
// dropped
func (s *MQTTSink) Publish(event string, payload interface{}) {
	if s.comm == nil || !s.comm.IsConnected() {
		return
	}

	topic := s.prefix + "/" + topicName(event)
	if err := s.comm.Publish(topic, payload); err != nil {
		logger.Warn("Failed to publish "+event+" to MQTT: "+err.Error(), "Notify")
	}
}

func topicName(event string) string {
	out := make([]byte, len(event))
	for i := 0; i < len(event); i++ {
		if event[i] == ':' {
			out[i] = '/'
		} else {
			out[i] = event[i]
		}
	}
	return string(out)
}
