package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis

// NewRedis starts the shared in-memory Redis on first use.
func NewRedis() *miniredis.Miniredis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
	})
	return redisServer
}

// RedisURL returns the connection URL of the shared server.
func RedisURL(server *miniredis.Miniredis) string {
	return "redis://" + server.Addr()
}

// ClearRedis drops every key.
func ClearRedis(server *miniredis.Miniredis) {
	server.FlushAll()
}
