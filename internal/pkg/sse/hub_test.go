package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesRoomOnly(t *testing.T) {
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("company-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("company-b")
	defer cleanupB()

	hub.Publish("company-a", "attendance.punched_in", map[string]string{"employee_id": "e1"})

	select {
	case ev := <-chA:
		assert.Equal(t, "attendance.punched_in", ev.Name)
		assert.Equal(t, "company-a", ev.CompanyID)
	case <-time.After(time.Second):
		t.Fatal("expected event in company-a room")
	}

	select {
	case ev := <-chB:
		t.Fatalf("company-b room should not receive %q", ev.Name)
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("company-a")
	_, cleanup2 := hub.Subscribe("company-a")
	require.Equal(t, 2, hub.RoomSize("company-a"))

	cleanup1()
	assert.Equal(t, 1, hub.RoomSize("company-a"))

	cleanup2()
	assert.Equal(t, 0, hub.RoomSize("company-a"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("company-a")
	defer cleanup()

	done := make(chan struct{})
	go func() {
		// More events than the channel buffer holds; publish must not block.
		for i := 0; i < 100; i++ {
			hub.Publish("company-a", "attendance.punched_out", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
