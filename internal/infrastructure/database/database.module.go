package database

import (
	"go.uber.org/fx"

	"matergui-core/internal/infrastructure/database/mongodb"
	"matergui-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(

	// Modules database
	mongodb.Module,
	redis.Module,
)
