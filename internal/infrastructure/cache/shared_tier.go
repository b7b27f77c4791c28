package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Shared-tier connection states: Unconnected until the first successful
// ping, then Connected, dropping to Degraded on any command error. The
// reconnect probe owned by the layered cache moves a degraded tier back to
// Connected out-of-band; operations never retry synchronously.
const (
	stateUnconnected int32 = iota
	stateConnected
	stateDegraded
)

// sharedTier fronts the external Redis tier. Every command error marks the
// tier degraded so the caller can fall back to the local tier within the
// same operation.
type sharedTier struct {
	r      redis.Cmdable
	prefix string
	state  int32
	logger *logrus.Logger
}

func newSharedTier(r redis.Cmdable, prefix string, logger *logrus.Logger) *sharedTier {
	return &sharedTier{r: r, prefix: prefix, state: stateUnconnected, logger: logger}
}

func (t *sharedTier) connected() bool {
	return atomic.LoadInt32(&t.state) == stateConnected
}

func (t *sharedTier) markConnected() {
	if atomic.SwapInt32(&t.state, stateConnected) != stateConnected && t.logger != nil {
		t.logger.Info("shared cache tier connected")
	}
}

func (t *sharedTier) markDegraded(err error) {
	if atomic.SwapInt32(&t.state, stateDegraded) != stateDegraded && t.logger != nil {
		t.logger.WithError(err).Warn("shared cache tier degraded, falling back to local tier")
	}
	degradationsTotal.Inc()
}

// probe pings the tier and promotes it to Connected on success.
func (t *sharedTier) probe(ctx context.Context) bool {
	if err := t.r.Ping(ctx).Err(); err != nil {
		return false
	}
	t.markConnected()
	return true
}

func (t *sharedTier) namespaced(key string) string {
	if t.prefix == "" {
		return key
	}
	return t.prefix + ":" + key
}

func (t *sharedTier) get(ctx context.Context, key string) (string, bool, error) {
	val, err := t.r.Get(ctx, t.namespaced(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		t.markDegraded(err)
		return "", false, err
	}
	return val, true, nil
}

func (t *sharedTier) set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := t.r.Set(ctx, t.namespaced(key), value, ttl).Err(); err != nil {
		t.markDegraded(err)
		return err
	}
	return nil
}

func (t *sharedTier) delete(ctx context.Context, key string) error {
	if err := t.r.Del(ctx, t.namespaced(key)).Err(); err != nil {
		t.markDegraded(err)
		return err
	}
	return nil
}

// deleteMatching scans for keys matching the namespaced pattern and deletes
// them in batches. A scan failure aborts the shared-tier clear but is not
// fatal to the overall operation.
func (t *sharedTier) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := t.r.Scan(ctx, cursor, t.namespaced(pattern), 100).Result()
		if err != nil {
			t.markDegraded(err)
			return err
		}
		if len(keys) > 0 {
			if err := t.r.Del(ctx, keys...).Err(); err != nil {
				t.markDegraded(err)
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
