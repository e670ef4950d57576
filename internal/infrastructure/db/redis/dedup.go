package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/collabhub/collab-platform/internal/core/ports"
)

const dedupTTL = time.Hour

// FanoutDedup provides idempotency checks for the notification fan-out.
// The key is derived from the fact itself (actor, action, entity), so
// replaying the same fact within the TTL is detected without any state on
// the fact's side.
type FanoutDedup struct {
	client *redis.Client
}

// NewFanoutDedup creates a FanoutDedup wrapping the given Redis client.
func NewFanoutDedup(client *redis.Client) *FanoutDedup {
	return &FanoutDedup{client: client}
}

// IsDuplicate reports whether this fact has already been fanned out.
func (d *FanoutDedup) IsDuplicate(ctx context.Context, fact ports.AuditFact) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(fact)).Result()
	if err != nil {
		return false, fmt.Errorf("fanout dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this fact has been fanned out (expires after dedupTTL).
func (d *FanoutDedup) Mark(ctx context.Context, fact ports.AuditFact) error {
	return d.client.Set(ctx, d.key(fact), "1", dedupTTL).Err()
}

func (d *FanoutDedup) key(fact ports.AuditFact) string {
	sum := sha256.Sum256([]byte(fact.ActorID + "|" + fact.Action + "|" + fact.EntityType + "|" + fact.EntityID))
	return "fanout:" + hex.EncodeToString(sum[:16])
}
