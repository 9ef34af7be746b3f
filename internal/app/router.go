package app

import (
	"matergui-core/internal/app/config"
	"matergui-core/internal/infrastructure/logger"
	coremw "matergui-core/internal/shared/middleware/core"
	securitymw "matergui-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

// NewRouter construit le routeur Gin avec les middlewares transverses.
// Les routes métier sont enregistrées par les modules (fx.Invoke).
func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	requestID coremw.RequestIDHandler,
	recovery coremw.RecoveryHandler,
	corsHandler securitymw.CORSHandler,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	// Routeur sans middleware par défaut pour une configuration explicite
	r := gin.New()

	// Middlewares dans l'ordre d'importance
	r.Use(gin.HandlerFunc(requestID))
	r.Use(loggerMiddleware.GinLogger())
	r.Use(gin.HandlerFunc(recovery))
	r.Use(gin.HandlerFunc(corsHandler))

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
