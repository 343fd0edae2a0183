package notify

import (
	"testing"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
)

func TestMemorySinkRecords(t *testing.T) {
	sink := NewMemorySink()

	sink.Publish(EventConfigUpdated, models.ConfigBroadcast{GuildID: "123"})

	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Event != "guild:config:updated" {
		t.Errorf("event = %q, want guild:config:updated", events[0].Event)
	}

	payload, ok := events[0].Payload.(models.ConfigBroadcast)
	if !ok {
		t.Fatalf("payload type = %T, want models.ConfigBroadcast", events[0].Payload)
	}
	if payload.GuildID != "123" {
		t.Errorf("guildId = %q, want 123", payload.GuildID)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	a := NewMemorySink()
	b := NewMemorySink()

	MultiSink{a, b}.Publish("test:event", nil)

	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Errorf("fan-out = %d/%d, want 1/1", len(a.Events()), len(b.Events()))
	}
}

func TestTopicName(t *testing.T) {
	if got := topicName("guild:config:updated"); got != "guild/config/updated" {
		t.Errorf("topicName = %q, want guild/config/updated", got)
	}
}

func TestMQTTSinkNilCommunicatorIsNoop(t *testing.T) {
	sink := NewMQTTSink(nil, "pancydash")

	// Must not panic with no broker configured
	sink.Publish(EventConfigUpdated, nil)
}
