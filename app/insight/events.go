package main

import (
	"time"

	"github.com/insightmeet/goInsightMeet/foundation/pubsub"
	"github.com/insightmeet/goInsightMeet/foundation/redis"
	"github.com/insightmeet/goInsightMeet/foundation/state"
	"go.uber.org/zap"
)

const analysisCompletedTopic = "analysis.completed"

// analysisEvent is published on the broker after each successful upload.
type analysisEvent struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	FileName         string    `json:"fileName,omitempty"`
	OverallSentiment string    `json:"overallSentiment"`
}

// runEventLogger guarantees the completed topic always has at least one
// subscriber and leaves an audit line per analysis.
func runEventLogger(broker *pubsub.Broker, log *zap.SugaredLogger) {
	sub := pubsub.NewSubscriber(10)
	broker.Subscribe(analysisCompletedTopic, sub)

	go func() {
		for data := range sub.GetChannel() {
			ev, ok := data.(analysisEvent)
			if !ok {
				continue
			}
			log.Infow("events: analysis completed", "id", ev.ID, "file", ev.FileName, "sentiment", ev.OverallSentiment)
		}
	}()
}

// runRedisForwarder mirrors completed-analysis events onto the Redis
// channel. The first publish failure disables the forwarder for the
// rest of the process lifetime.
func runRedisForwarder(broker *pubsub.Broker, r *redis.Redis, st *state.State, log *zap.SugaredLogger) {
	sub := pubsub.NewSubscriber(10)
	broker.Subscribe(analysisCompletedTopic, sub)

	go func() {
		for data := range sub.GetChannel() {
			if !st.Get(state.Redis) {
				continue
			}
			if err := r.Produce(data); err != nil {
				st.Set(state.Redis, false)
				log.Errorw("events: redis forward", "ERROR", err)
			}
		}
	}()
}
