// Package redis publishes analysis lifecycle events to a Redis channel
// for downstream consumers. Publishing is optional and best effort.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Redis struct {
	Client          *redis.Client
	Logger          *zap.SugaredLogger
	AnalysisChannel string
}

func New(host, password, analysisChannel string, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{
		Client:          client,
		Logger:          logger,
		AnalysisChannel: analysisChannel,
	}, nil
}

func (r *Redis) Produce(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := r.Client.Publish(context.Background(), r.AnalysisChannel, jsonData).Err(); err != nil {
		return err
	}

	r.Logger.Infow("redis: Produce", "channel", r.AnalysisChannel)

	return nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
