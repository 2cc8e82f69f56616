package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// SessionKeyPrefix is the key namespace shared with the login service that
// writes sessions into Redis.
const SessionKeyPrefix = "sess:"

// SessionChecker answers whether a session id belongs to a logged-in user.
// Credential handling lives elsewhere; this side only reads and ends sessions.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	EndSession(ctx context.Context, sessionID string) error
}

type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse Redis URL")
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &SessionCache{client: client}, nil
}

func sessionKey(sessionID string) string {
	return SessionKeyPrefix + sessionID
}

func (sc *SessionCache) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	exists, err := sc.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check session")
	}
	return exists > 0, nil
}

func (sc *SessionCache) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := sc.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}

func (sc *SessionCache) Ping(ctx context.Context) error {
	return sc.client.Ping(ctx).Err()
}

func (sc *SessionCache) Close() error {
	return sc.client.Close()
}

// AnonymousSessions is used when no session store is configured. Nobody is
// ever logged in and ending a session is a no-op.
type AnonymousSessions struct{}

func (AnonymousSessions) IsAuthenticated(context.Context, string) (bool, error) {
	return false, nil
}

func (AnonymousSessions) EndSession(context.Context, string) error {
	return nil
}

// ParseSessionID extracts the session id from a signed session cookie value
// of the form "s:<id>.<signature>", URL-encoded or not. Unsigned values are
// returned unchanged. The signature is not verified here.
func ParseSessionID(cookieValue string) (string, error) {
	value, err := url.QueryUnescape(cookieValue)
	if err != nil {
		return "", fmt.Errorf("malformed session cookie: %w", err)
	}
	if !strings.HasPrefix(value, "s:") {
		return value, nil
	}
	value = strings.TrimPrefix(value, "s:")
	if idx := strings.LastIndex(value, "."); idx >= 0 {
		value = value[:idx]
	}
	if value == "" {
		return "", errors.New("malformed session cookie: empty id")
	}
	return value, nil
}
