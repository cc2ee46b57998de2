package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/redis/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/clients"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// historyGenTTL должен превышать любое чтение истории из БД; истёкшее поколение читается как 0
// и только отменяет запись в кэш.
const historyGenTTL = 24 * time.Hour

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CacheConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CacheConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает товар из кэша; повреждённая запись удаляется и считается промахом.
func (c *CacheRepo) GetProduct(ctx context.Context, id uuid.UUID) (*domain.TrackedProduct, bool, error) {
	key := productKey(id)

	data, found, err := c.get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.dropCorrupted(key, err)
		return nil, false, nil
	}

	product, err := c.conv.ProductToEntity(&model)
	if err != nil || product.ID != id {
		c.dropCorrupted(key, fmt.Errorf("cache id mismatch or bad model: key_id: %s, err: %v", id, err))
		return nil, false, nil
	}

	return product, true, nil
}

func (c *CacheRepo) SetProduct(ctx context.Context, product *domain.TrackedProduct) error {
	data, err := json.Marshal(c.conv.ProductToRedisModel(product))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, productKey(product.ID), data, c.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client.Del(ctx, productKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) GetHistory(ctx context.Context, productID uuid.UUID) ([]domain.PriceObservation, bool, error) {
	key := historyKey(productID)

	data, found, err := c.get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	var model converter.HistoryRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.dropCorrupted(key, err)
		return nil, false, nil
	}

	history, err := c.conv.HistoryToEntity(&model)
	if err != nil {
		c.dropCorrupted(key, err)
		return nil, false, nil
	}

	return history, true, nil
}

func (c *CacheRepo) HistoryGeneration(ctx context.Context, productID uuid.UUID) (int64, error) {
	gen, err := c.client.Client.Get(ctx, historyGenKey(productID)).Int64()
	if errors.Is(err, r.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return gen, nil
}

// setIfGeneration пишет KEYS[2], только если поколение в KEYS[1] равно ARGV[1].
var setIfGeneration = r.NewScript(`
local gen = redis.call('GET', KEYS[1])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (c *CacheRepo) SetHistory(ctx context.Context, productID uuid.UUID, generation int64, history []domain.PriceObservation) (bool, error) {
	data, err := json.Marshal(c.conv.HistoryToRedisModel(productID, history))
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	keys := []string{historyGenKey(productID), historyKey(productID)}
	stored, err := setIfGeneration.Run(ctx, c.client.Client, keys,
		strconv.FormatInt(generation, 10), data, c.cfg.HistoryTTL.Milliseconds()).Int()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return stored == 1, nil
}

// DeleteHistory сбрасывает историю и увеличивает поколение, чтобы запоздавший SetHistory её не вернул.
func (c *CacheRepo) DeleteHistory(ctx context.Context, productID uuid.UUID) error {
	genKey := historyGenKey(productID)
	_, err := c.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, historyGenTTL)
		pipe.Del(ctx, historyKey(productID))
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// get читает ключ; redis.Nil означает промах.
func (c *CacheRepo) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, true, nil
}

func (c *CacheRepo) dropCorrupted(key string, cause error) {
	c.logger.Warnf("Redis cache entry %s is corrupted: %v", key, cause)
	if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func productKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func historyKey(productID uuid.UUID) string {
	return "product:" + productID.String() + ":history"
}

func historyGenKey(productID uuid.UUID) string {
	return "product:" + productID.String() + ":history:gen"
}
