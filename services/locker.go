package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rentledger/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PropertyLocker cấp vùng độc quyền theo từng property.
// Hai thao tác trên cùng property không chạy xen nhau, khác property thì chạy song song.
type PropertyLocker interface {
	Lock(ctx context.Context, propertyID uint) (unlock func(), err error)
}

// LocalLocker khóa trong tiến trình, dùng khi chạy một instance
type LocalLocker struct {
	mu    sync.Mutex
	slots map[uint]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[uint]*lockSlot)}
}

func (l *LocalLocker) Lock(ctx context.Context, propertyID uint) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[propertyID]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[propertyID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(propertyID, slot)
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không lấy được khóa property", fmt.Errorf("%w: %v", errors.ErrPropertyLockFailed, ctx.Err()))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.release(propertyID, slot)
		})
	}, nil
}

func (l *LocalLocker) release(propertyID uint, slot *lockSlot) {
	l.mu.Lock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, propertyID)
	}
	l.mu.Unlock()
}

// chỉ xóa key nếu token vẫn là của mình
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker khóa phân tán bằng SET NX PX, dùng khi chạy nhiều instance
type RedisLocker struct {
	rdb        *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retryDelay: 25 * time.Millisecond}
}

func propertyLockKey(propertyID uint) string {
	return fmt.Sprintf("lock:property:%d", propertyID)
}

func (l *RedisLocker) Lock(ctx context.Context, propertyID uint) (func(), error) {
	key := propertyLockKey(propertyID)
	token := uuid.New().String()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không lấy được khóa property", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không lấy được khóa property", fmt.Errorf("%w: %v", errors.ErrPropertyLockFailed, ctx.Err()))
		case <-time.After(l.retryDelay):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// context riêng để vẫn nhả khóa khi request đã bị hủy
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			unlockScript.Run(releaseCtx, l.rdb, []string{key}, token)
		})
	}, nil
}
