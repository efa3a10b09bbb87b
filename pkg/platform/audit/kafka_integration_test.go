//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"

	"preflight/pkg/platform/audit"
)

// TestKafkaSinkProducesEvents verifies an appended event lands on the topic
// as consumable JSON.
func TestKafkaSinkProducesEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.1.7")
	if err != nil {
		t.Fatalf("failed to start redpanda container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	broker, err := container.KafkaSeedBroker(ctx)
	if err != nil {
		t.Fatalf("failed to get seed broker: %v", err)
	}

	const topic = "preflight.audit.test"

	sink, err := audit.NewKafkaSink([]string{broker}, topic)
	if err != nil {
		t.Fatalf("failed to build kafka sink: %v", err)
	}
	t.Cleanup(sink.Close)

	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Actor:     "operator-7",
		Action:    audit.ActionFixSucceeded,
		Entity:    "STUDENT",
		RecordID:  7,
		ErrorID:   42,
		ErrorCode: "TCSI_STUDENT_FORMAT_101",
		Detail:    "Padded CHESSN from '12345' to '0000012345'",
	}
	if err := sink.Append(ctx, event); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		t.Fatalf("failed to build consumer: %v", err)
	}
	t.Cleanup(consumer.Close)

	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	if errs := fetches.Errors(); len(errs) > 0 {
		t.Fatalf("fetch errors: %v", errs)
	}

	records := fetches.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if string(records[0].Key) != "operator-7" {
		t.Fatalf("expected actor key, got %q", records[0].Key)
	}

	var decoded audit.Event
	if err := json.Unmarshal(records[0].Value, &decoded); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if decoded.Action != audit.ActionFixSucceeded || decoded.ErrorID != 42 {
		t.Fatalf("unexpected event payload: %+v", decoded)
	}
}
