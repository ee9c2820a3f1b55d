package runlock

import (
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/voltra/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("runlock",
	fx.Provide(Provide),
)

// Provide picks the redis locker when REDIS_ADDR is set, otherwise the
// in-process fallback suitable for single-node deployments.
func Provide(cfg config.Config, log *zap.Logger) Locker {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Info("run lock using in-process locker")
		return NewLocalLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})
	log.Info("run lock using redis locker", zap.String("addr", addr))
	return NewRedisLocker(client)
}
