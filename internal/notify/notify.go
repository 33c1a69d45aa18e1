// Package notify publishes guild mutation events for downstream consumers such
// as bot shards that keep local copies of guild settings.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "guildrpc:events"

const defaultPublishTimeout = time.Second

// Event describes one successful mutation.
type Event struct {
	Type      string `json:"type"`                 // service.Method, e.g. moderation.ModerationService.CreateWarn
	GuildID   int64  `json:"guild_id"`             // guild the mutation was scoped to
	SubjectID int64  `json:"subject_id,omitempty"` // target user or ticket author, when the record has one
	At        int64  `json:"at"`                   // unix seconds
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }

// RedisPublisher sends events as JSON over redis pub/sub.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
}

// NewRedisPublisher connects to redisURL (redis://[:password@]host:port/db).
func NewRedisPublisher(ctx context.Context, redisURL, channel string, timeout time.Duration) (*RedisPublisher, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, errors.New("notify: empty redis url")
	}
	opt, errParse := redis.ParseURL(redisURL)
	if errParse != nil {
		return nil, fmt.Errorf("notify: parse redis url: %w", errParse)
	}
	client := redis.NewClient(opt)
	if errPing := client.Ping(ctx).Err(); errPing != nil {
		_ = client.Close()
		return nil, fmt.Errorf("notify: ping redis: %w", errPing)
	}
	return newRedisPublisher(client, channel, timeout), nil
}

func newRedisPublisher(client *redis.Client, channel string, timeout time.Duration) *RedisPublisher {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &RedisPublisher{client: client, channel: channel, timeout: timeout}
}

// Channel returns the pub/sub channel events are sent to.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At == 0 {
		ev.At = time.Now().Unix()
	}
	payload, errMarshal := json.Marshal(ev)
	if errMarshal != nil {
		return errMarshal
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if errPublish := p.client.Publish(ctx, p.channel, payload).Err(); errPublish != nil {
		return fmt.Errorf("notify: publish %s: %w", ev.Type, errPublish)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Emit publishes ev and logs instead of returning a failure.
func Emit(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if errPublish := p.Publish(ctx, ev); errPublish != nil {
		log.WithError(errPublish).WithField("guild_id", ev.GuildID).Warn("notify: event dropped")
	}
}
