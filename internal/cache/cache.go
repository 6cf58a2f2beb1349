// Package cache хранит готовые результаты расчетов.
// Расчет идемпотентен, поэтому результат можно брать по хэшу запроса.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache хранилище сериализованных результатов
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// Key строит ключ кэша из имени операции и запроса
func Key(operation string, request interface{}) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	h := xxhash.New()
	_, _ = h.WriteString(operation)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(payload)
	return "loan-engine:" + operation + ":" + strconv.FormatUint(h.Sum64(), 16), nil
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache кэш в памяти процесса, используется когда Redis не настроен
type MemoryCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryCache создает кэш в памяти; ttl <= 0 отключает истечение
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	item := memoryItem{value: value}
	if c.ttl > 0 {
		item.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Len количество записей, включая истекшие
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
