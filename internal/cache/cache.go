// Package cache хранит значения с ограниченным временем жизни и ограниченным размером.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache потокобезопасный TTL-кеш поверх ttlcache. Чтение не продлевает жизнь записи.
// При переполнении вытесняется запись, к которой дольше всех не обращались.
// Просроченные записи не отдаются и удаляются при Sweep.
type Cache[K comparable, V any] struct {
	items *ttlcache.Cache[K, V]
}

// New создаёт кеш. maxSize <= 0 означает без ограничения размера.
func New[K comparable, V any](ttl time.Duration, maxSize int) *Cache[K, V] {
	opts := []ttlcache.Option[K, V]{
		ttlcache.WithTTL[K, V](ttl),
		ttlcache.WithDisableTouchOnHit[K, V](),
	}
	if maxSize > 0 {
		opts = append(opts, ttlcache.WithCapacity[K, V](uint64(maxSize)))
	}
	return &Cache[K, V]{items: ttlcache.New[K, V](opts...)}
}

// Get возвращает живое значение по ключу
func (c *Cache[K, V]) Get(key K) (V, bool) {
	item := c.items.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set сохраняет значение на ttl кеша
func (c *Cache[K, V]) Set(key K, value V) {
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

// Delete удаляет ключи
func (c *Cache[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.items.Delete(key)
	}
}

// Sweep удаляет просроченные записи и возвращает сколько записей было вытеснено
// за время очистки (для логов; параллельные Delete тоже попадают в счёт)
func (c *Cache[K, V]) Sweep() int {
	before := c.items.Metrics().Evictions
	c.items.DeleteExpired()
	return int(c.items.Metrics().Evictions - before)
}

// Len количество живых записей
func (c *Cache[K, V]) Len() int {
	return c.items.Len()
}
