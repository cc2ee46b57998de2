package clients

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// RedisClient — общий клиент для кэша и шины изменений
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(c *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(&r.Options{
			Addr:         c.Addr,
			Password:     c.Password,
			DB:           c.DB,
			Username:     c.User,
			MaxRetries:   c.MaxRetries,
			DialTimeout:  c.DialTimeout,
			ReadTimeout:  c.Timeout,
			WriteTimeout: c.Timeout,
		}),
	}
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	if err := rc.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (rc *RedisClient) Close(_ context.Context) error {
	return rc.Client.Close()
}
