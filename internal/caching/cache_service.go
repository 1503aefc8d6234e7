package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

// CacheService is a read-through cache for stock rows. Cache errors are
// never fatal: callers log and fall through to the database.
type CacheService interface {
	GetStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error)
	SetStock(ctx context.Context, stock *models.Stock, ttl time.Duration) error
	DeleteStock(ctx context.Context, productID, warehouseID uuid.UUID) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as plain host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func stockKey(productID, warehouseID uuid.UUID) string {
	return fmt.Sprintf("audit-tracker:stock:%s:%s", productID.String(), warehouseID.String())
}

func (r *redisCacheService) GetStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	data, err := r.client.Get(ctx, stockKey(productID, warehouseID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stock models.Stock
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *redisCacheService) SetStock(ctx context.Context, stock *models.Stock, ttl time.Duration) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stockKey(stock.ProductID, stock.WarehouseID), data, ttl).Err()
}

func (r *redisCacheService) DeleteStock(ctx context.Context, productID, warehouseID uuid.UUID) error {
	return r.client.Del(ctx, stockKey(productID, warehouseID)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
