package system

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"matergui-core/internal/modules/system/controllers"
	"matergui-core/internal/modules/system/services"
)

// Module regroupe tous les providers du domaine System
var Module = fx.Options(
	fx.Provide(services.NewSystemService),
	fx.Provide(controllers.NewSystemController),
	fx.Invoke(RegisterSystemRoutes),
)

// RegisterSystemRoutes configure les routes Gin pour System
func RegisterSystemRoutes(r *gin.Engine, ctrl *controllers.SystemController) {
	r.GET("/", ctrl.Root)
	r.GET("/schema", ctrl.GetSchema)
	r.GET("/test", ctrl.TestDatabase)
}
