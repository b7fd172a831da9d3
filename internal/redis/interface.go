package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis universal client. Repositories take this instead of
// a concrete *redis.Client so single-node and miniredis setups are
// interchangeable.
type Client interface {
	redis.UniversalClient
}
