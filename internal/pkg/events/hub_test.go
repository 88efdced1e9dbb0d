package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe("emp-1")
	defer unsubscribe()

	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Name: "timesheet_approved"})

	select {
	case event := <-ch:
		assert.Equal(t, "timesheet_approved", event.Name)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishIsScopedToEmployee(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe("emp-1")
	defer unsubscribe()

	hub.Publish("emp-2", Event{EmployeeID: "emp-2", Name: "timesheet_approved"})

	select {
	case <-ch:
		t.Fatal("emp-1 must not see emp-2's events")
	default:
	}
}

func TestHub_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Publish("nobody", Event{EmployeeID: "nobody", Name: "timesheet_submitted"})
		close(done)
	}()
	<-done
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe("emp-1")
	defer unsubscribe()

	// Overfill the buffer; the extra publishes must drop, not hang.
	for i := 0; i < 50; i++ {
		hub.Publish("emp-1", Event{EmployeeID: "emp-1", Name: "timesheet_submitted"})
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
}
