package pubsub

// Subscriber is one consumer of a broker topic. Its channel stays open
// until the subscriber is unsubscribed.
type Subscriber struct {
	payload chan any
}

// NewSubscriber builds a subscriber with the given channel capacity. A
// non-positive capacity yields an unbuffered channel, which makes
// Signal block until the consumer drains it.
func NewSubscriber(channelCapacity int) *Subscriber {
	if channelCapacity > 0 {
		return &Subscriber{
			payload: make(chan any, channelCapacity),
		}
	}
	return &Subscriber{
		payload: make(chan any),
	}
}

// Signal delivers one payload. Called by the broker on publish.
func (s *Subscriber) Signal(data any) {
	s.payload <- data
}

// GetChannel exposes the receive side for the consumer goroutine.
func (s *Subscriber) GetChannel() <-chan any {
	return s.payload
}

// CloseChannel ends the consumer's range loop. Only the broker calls
// this, on unsubscribe.
func (s *Subscriber) CloseChannel() {
	close(s.payload)
}
