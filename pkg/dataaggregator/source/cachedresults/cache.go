package cachedresults

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const expiration = 90 * time.Minute

// Cache holds lookup results for one schedule. Every key is prefixed with Namespace and tagged
// with it so a re-imported schedule can drop the results of the one it replaced.
type Cache struct {
	Cache     *cache.Cache[string]
	Namespace string
}

// Namespace identifies the schedule a dataset was imported into. Results from different
// datasets or stores sharing one redis never collide.
func Namespace(datasetIdentifier string, storeIdentity string) string {
	return datasetIdentifier + "@" + storeIdentity
}

func (c *Cache) Setup(client *redis.Client) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

// Key is the redis key holding the result for a query key.
func (c *Cache) Key(queryKey string) string {
	return strconv.Quote(c.Namespace) + "/" + queryKey
}

// Invalidate removes every result cached under the namespace.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.Cache.Invalidate(ctx, store.WithInvalidateTags([]string{c.Namespace}))
}

// Get decodes the cached value for key. A miss or an undecodable value reports false.
func Get[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var value T

	encoded, err := c.Cache.Get(ctx, c.Key(key))
	if err != nil {
		return value, false
	}

	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		return value, false
	}

	return value, true
}

func Set[T any](ctx context.Context, c *Cache, key string, value T) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, c.Key(key), string(encoded), store.WithTags([]string{c.Namespace}))
}
