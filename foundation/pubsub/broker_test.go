package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFanOut(t *testing.T) {
	b := NewBroker()
	s1 := NewSubscriber(1)
	s2 := NewSubscriber(1)
	b.Subscribe("analysis.completed", s1)
	b.Subscribe("analysis.completed", s2)

	require.NoError(t, b.Publish("analysis.completed", "payload"))

	for _, s := range []*Subscriber{s1, s2} {
		select {
		case got := <-s.GetChannel():
			assert.Equal(t, "payload", got)
		case <-time.After(time.Second):
			t.Fatal("subscriber never signalled")
		}
	}
}

func TestPublishUnknownTopic(t *testing.T) {
	b := NewBroker()
	assert.Error(t, b.Publish("nobody.listens", "payload"))
}

func TestUnSubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	s := NewSubscriber(1)
	b.Subscribe("analysis.completed", s)

	require.NoError(t, b.UnSubscribe("analysis.completed", s))

	_, open := <-s.GetChannel()
	assert.False(t, open)

	assert.Error(t, b.UnSubscribe("never.registered", s))
}
