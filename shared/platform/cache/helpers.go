package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const opTimeout = 200 * time.Millisecond

// Put guarda el valor con un timeout corto. Un fallo de caché solo se registra.
// Es síncrono: un Set en background podría pisar una invalidación posterior.
func Put(ctx context.Context, cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
		log.Warn("Cache update failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Invalidate elimina la clave de forma síncrona: una lectura posterior a una
// escritura nunca debe ver la versión anterior.
func Invalidate(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := cache.Delete(cacheCtx, key); err != nil {
		log.Warn("Cache deletion failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
