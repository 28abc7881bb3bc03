package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/caltrain/pkg/util"
)

var Client *redis.Client

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Enabled reports whether a redis address has been configured. The result cache is skipped
// when it has not.
func Enabled() bool {
	return util.GetEnvironmentVariables()["CALTRAIN_REDIS_ADDRESS"] != ""
}

// Connect sets Client from the environment. When redis cannot be reached the client is closed and
// Client is left nil.
func Connect(ctx context.Context) error {
	env := util.GetEnvironmentVariables()

	address := env["CALTRAIN_REDIS_ADDRESS"]
	password := util.GetEnvironmentVariable(env, "CALTRAIN_REDIS_PASSWORD", defaultConnectionPassword)
	database := defaultDatabase

	if env["CALTRAIN_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["CALTRAIN_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return err
	}

	Client = client

	return nil
}
