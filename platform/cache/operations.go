// Package cache is a thin redis layer for cosmetic lookups: the current
// game id per channel and member display names. Everything here is
// best-effort; a miss or a down redis falls through to postgres.
package cache

import (
	"github.com/gomodule/redigo/redis"
)

// Get returns the value and whether the key existed.
func Get(pool *redis.Pool, key string) (string, bool) {
	conn := pool.Get()
	defer conn.Close()

	data, err := redis.String(conn.Do("GET", key))
	if err != nil {
		return "", false
	}
	return data, true
}

// SetEx stores a value with a TTL in seconds.
func SetEx(pool *redis.Pool, key string, value interface{}, seconds int) {
	conn := pool.Get()
	defer conn.Close()

	conn.Do("SETEX", key, seconds, value)
}
