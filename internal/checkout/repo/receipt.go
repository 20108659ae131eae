package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

// ReceiptRepository journals issued receipts per customer. It is a side
// record only; stock and balances are never rebuilt from it.
type ReceiptRepository interface {
	// Save appends a receipt to the customer's journal
	Save(ctx context.Context, receipt *model.Receipt) error

	// List returns the customer's receipts, oldest first
	List(ctx context.Context, customer string) ([]*model.Receipt, error)
}

// MemoryReceiptRepository keeps receipts for the life of the process.
type MemoryReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string][]*model.Receipt
}

// NewMemoryReceiptRepository returns an empty in-process journal.
func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{receipts: make(map[string][]*model.Receipt)}
}

// Save appends receipt to its customer's journal.
func (m *MemoryReceiptRepository) Save(_ context.Context, receipt *model.Receipt) error {
	if receipt == nil {
		return errx.Newf(errx.KindInvalidInput, "receipt is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[receipt.Customer] = append(m.receipts[receipt.Customer], receipt)
	return nil
}

// List returns a copy of the customer's receipts, oldest first.
func (m *MemoryReceiptRepository) List(_ context.Context, customer string) ([]*model.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Receipt, len(m.receipts[customer]))
	copy(out, m.receipts[customer])
	return out, nil
}

// RedisReceiptRepository stores each customer's receipts as a JSON list.
type RedisReceiptRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisReceiptRepository stores receipts in rdb. A positive ttl is
// refreshed on every save.
func NewRedisReceiptRepository(rdb redis.Cmdable, ttl time.Duration) *RedisReceiptRepository {
	return &RedisReceiptRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisReceiptRepository) receiptsKey(customer string) string {
	return fmt.Sprintf("receipts:%s", customer)
}

// Save pushes receipt as JSON onto its customer's list.
func (r *RedisReceiptRepository) Save(ctx context.Context, receipt *model.Receipt) error {
	if receipt == nil {
		return errx.Newf(errx.KindInvalidInput, "receipt is nil")
	}
	b, err := json.Marshal(receipt)
	if err != nil {
		logx.Error().Err(err).Str("receipt_id", receipt.ID).Msg("failed to marshal receipt")
		return fmt.Errorf("marshal receipt: %w", err)
	}
	key := r.receiptsKey(receipt.Customer)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push receipt to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on receipts key")
		}
	}
	return nil
}

// List decodes the customer's list, oldest first. A missing key yields an
// empty slice.
func (r *RedisReceiptRepository) List(ctx context.Context, customer string) ([]*model.Receipt, error) {
	key := r.receiptsKey(customer)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*model.Receipt{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load receipts from redis")
		return nil, errx.WrapRedis(err)
	}

	out := make([]*model.Receipt, 0, len(rows))
	for i, s := range rows {
		var rc model.Receipt
		if err := json.Unmarshal([]byte(s), &rc); err != nil {
			logx.Error().Err(err).Str("customer", customer).Int("index", i).Msg("failed to unmarshal receipt")
			return nil, fmt.Errorf("unmarshal receipt at index %d: %w", i, err)
		}
		out = append(out, &rc)
	}
	return out, nil
}

var (
	_ ReceiptRepository = (*MemoryReceiptRepository)(nil)
	_ ReceiptRepository = (*RedisReceiptRepository)(nil)
)
