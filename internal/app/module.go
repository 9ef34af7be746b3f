package app

import (
	"matergui-core/internal/app/config"
	"matergui-core/internal/infrastructure/database"
	"matergui-core/internal/infrastructure/database/redis"
	"matergui-core/internal/infrastructure/logger"
	"matergui-core/internal/modules/records"
	"matergui-core/internal/modules/system"
	coremw "matergui-core/internal/shared/middleware/core"
	securitymw "matergui-core/internal/shared/middleware/security"

	"go.uber.org/fx"
)

// NewRedisKeyGenerator crée le générateur de clés Redis
func NewRedisKeyGenerator(cfg *config.Config) *redis.RedisKeyGenerator {
	return redis.NewRedisKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewRedisConfig),

	// Utilitaires partagés (après config, avant infrastructure)
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,

	// Middlewares partagés
	fx.Provide(coremw.RequestIDMiddleware),
	fx.Provide(coremw.RecoveryMiddleware),
	fx.Provide(securitymw.CORSMiddleware),

	// Router
	fx.Provide(NewRouter),

	// Modules métier
	system.Module,
	records.Module,

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke((*Application).Start),
)
