package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preflight/pkg/requestcontext"
)

func TestEmitStampsContextIdentity(t *testing.T) {
	now := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithOperatorID(ctx, "operator-7")

	sink := NewInMemory()
	publisher := NewPublisher(sink)

	err := publisher.Emit(ctx, Event{Action: ActionFixSucceeded, ErrorID: 42})
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "operator-7", events[0].Actor)
}

func TestEmitKeepsExplicitIdentity(t *testing.T) {
	stamped := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	sink := NewInMemory()
	publisher := NewPublisher(sink)

	err := publisher.Emit(context.Background(), Event{
		Timestamp: stamped,
		Actor:     "batch-job",
		Action:    ActionFixFailed,
	})
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, stamped, events[0].Timestamp)
	assert.Equal(t, "batch-job", events[0].Actor)
}
