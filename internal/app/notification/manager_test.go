package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SubscribeAndBroadcast(t *testing.T) {
	m := NewManager[string](4)

	id1, ch1 := m.Subscribe()
	id2, ch2 := m.Subscribe()
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, m.SubscriberCount())

	assert.Equal(t, 2, m.Broadcast("first"))
	assert.Equal(t, 2, m.Broadcast("second"))

	for _, ch := range []<-chan Notification[string]{ch1, ch2} {
		n := <-ch
		assert.Equal(t, uint64(1), n.SequenceNo)
		assert.Equal(t, "first", n.Payload)
		n = <-ch
		assert.Equal(t, uint64(2), n.SequenceNo)
		assert.Equal(t, "second", n.Payload)
	}
}

func TestManager_BroadcastDoesNotBlock(t *testing.T) {
	m := NewManager[int](1)
	_, ch := m.Subscribe()

	assert.Equal(t, 1, m.Broadcast(1))
	assert.Equal(t, 1, m.Broadcast(2), "full buffer sheds the oldest notification")

	n := <-ch
	assert.Equal(t, 2, n.Payload)
	assert.Equal(t, uint64(2), n.SequenceNo)

	assert.Equal(t, 1, m.Broadcast(3))
	n = <-ch
	assert.Equal(t, 3, n.Payload)
	assert.Equal(t, uint64(3), n.SequenceNo)
}

func TestManager_SlowSubscriberKeepsNewest(t *testing.T) {
	m := NewManager[int](3)
	_, ch := m.Subscribe()

	for i := 1; i <= 10; i++ {
		m.Broadcast(i)
	}

	var got []int
	for len(ch) > 0 {
		got = append(got, (<-ch).Payload)
	}
	assert.Equal(t, []int{8, 9, 10}, got)
}

func TestManager_Unsubscribe(t *testing.T) {
	m := NewManager[int](0)
	id, ch := m.Subscribe()

	m.Unsubscribe(id)
	assert.Equal(t, 0, m.SubscriberCount())

	_, ok := <-ch
	assert.False(t, ok, "channel is closed after unsubscribe")

	// Unknown IDs are ignored.
	m.Unsubscribe("unknown")
	m.Unsubscribe(id)
}

func TestManager_Close(t *testing.T) {
	m := NewManager[int](0)
	_, ch := m.Subscribe()

	m.Close()
	m.Close()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, m.SubscriberCount())
	assert.Equal(t, 0, m.Broadcast(1))

	_, late := m.Subscribe()
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")
}
