// Package slotlock блокирует слот врача на время проверки и вставки записи
package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired возвращается, когда слот уже бронируется другим запросом
var ErrLockNotAcquired = errors.New("slotlock: slot lock not acquired")

// Locker охраняет критическую секцию бронирования конкретного слота врача
type Locker interface {
	WithSlotLock(ctx context.Context, doctorID int64, scheduledAt time.Time, fn func(ctx context.Context) error) error
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(addr, username, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker создает блокировку на ключе Redis для каждого слота
func NewRedisLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisLocker{client: client, ttl: ttl}
}

func (l *redisLocker) WithSlotLock(ctx context.Context, doctorID int64, scheduledAt time.Time, fn func(ctx context.Context) error) error {
	key := Key(doctorID, scheduledAt)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}

// Key ключ блокировки слота. Момент нормализуется в UTC, чтобы ключ не зависел от пояса.
func Key(doctorID int64, scheduledAt time.Time) string {
	return fmt.Sprintf("lock:appointment:%d:%d", doctorID, scheduledAt.UTC().Unix())
}

type noopLocker struct{}

// NewNoopLocker создает блокировку, которая сразу выполняет fn (Redis выключен)
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) WithSlotLock(ctx context.Context, _ int64, _ time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
