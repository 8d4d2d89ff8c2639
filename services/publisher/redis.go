package publisher

import (
	"context"
	"encoding/base64"
	"hash/fnv"
	"strconv"
	"time"

	"sjsage522/storecrawler/logger"
	apperrors "sjsage522/storecrawler/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const providerName = "Redis"

// RedisConfig holds the stream layout of a RedisPublisher
type RedisConfig struct {
	Addr         string
	DB           int
	StreamPrefix string
	// StreamCount shards messages over prefix:0 .. prefix:N-1
	StreamCount     int
	StreamMaxLength int
}

// RedisPublisher publishes store batches to Redis streams
type RedisPublisher struct {
	client          *redis.Client
	ctx             context.Context
	streamPrefix    string
	streamCount     int
	streamMaxLength int
	log             *logger.Logger
}

// NewRedisPublisher creates a Redis publisher and checks the connection
func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (*RedisPublisher, error) {
	if cfg.StreamPrefix == "" {
		return nil, apperrors.NewConfiguration("redis stream prefix is required", nil)
	}
	if cfg.StreamCount < 1 {
		cfg.StreamCount = 1
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, apperrors.NewPublisher(providerName, "failed to connect to "+cfg.Addr, err)
	}

	return &RedisPublisher{
		client:          client,
		ctx:             ctx,
		streamPrefix:    cfg.StreamPrefix,
		streamCount:     cfg.StreamCount,
		streamMaxLength: cfg.StreamMaxLength,
		log:             logger.ForPublisher(),
	}, nil
}

// StreamFor returns the stream a key is routed to. The same key always
// lands on the same stream so a consumer sees one region in order.
func (p *RedisPublisher) StreamFor(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return p.streamPrefix + ":" + strconv.Itoa(int(h.Sum32()%uint32(p.streamCount)))
}

// Publish base64-encodes message and appends it to the key's stream
func (p *RedisPublisher) Publish(key string, message []byte) error {
	stream := p.StreamFor(key)

	id, err := p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			key: base64.StdEncoding.EncodeToString(message),
		},
	}).Result()
	if err != nil {
		return apperrors.NewPublisher(providerName, "failed to publish to "+stream, err)
	}

	p.log.Debug().Str("stream", stream).Str("id", id).Int("bytes", len(message)).Msg("Published")
	return nil
}

// TrimStreams trims every prefixed stream to the configured maximum length
func (p *RedisPublisher) TrimStreams() error {
	if p.streamMaxLength <= 0 {
		return nil
	}

	for i := 0; i < p.streamCount; i++ {
		stream := p.streamPrefix + ":" + strconv.Itoa(i)
		if err := p.client.XTrimMaxLen(p.ctx, stream, int64(p.streamMaxLength)).Err(); err != nil {
			return apperrors.NewPublisher(providerName, "failed to trim "+stream, err)
		}
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
