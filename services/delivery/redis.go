package delivery

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/internal/scraper"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

// recordField is the stream entry field holding the encoded record
const recordField = "b64_property"

var _ Sink = (*RedisSink)(nil)

// RedisSink appends records to a Redis stream for downstream
// consumers, as an alternative to the HTTP delivery endpoint
type RedisSink struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int
	log       *logger.Logger
}

// NewRedisSink creates a sink appending to the configured stream
func NewRedisSink(ctx context.Context, cfg *config.Config, log *logger.Logger) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	return &RedisSink{
		client:    client,
		ctx:       ctx,
		stream:    cfg.RedisStream,
		maxLength: cfg.RedisStreamMaxLength,
		log:       log.ForComponent("redis"),
	}
}

// Deliver appends one record to the stream. The record JSON is base64
// encoded before publishing.
func (s *RedisSink) Deliver(record scraper.PropertyRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.NewDelivery("encode", "failed to encode record", err)
	}

	encoded := base64.StdEncoding.EncodeToString(payload)

	err = s.client.XAdd(s.ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			recordField: encoded,
		},
	}).Err()
	if err != nil {
		return errors.NewDelivery("xadd", "failed to append record to stream", err)
	}

	return nil
}

// Close trims the stream to the configured maximum length and closes
// the connection
func (s *RedisSink) Close() error {
	if s.maxLength > 0 {
		if err := s.client.XTrimMaxLen(s.ctx, s.stream, int64(s.maxLength)).Err(); err != nil {
			s.log.WithError(err).Warn().Msg("Failed to trim stream")
		}
	}

	return s.client.Close()
}
