package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matergui-core/internal/modules/records/schema"
	"matergui-core/internal/modules/system/dto"
	"matergui-core/internal/modules/system/services"
)

type SystemController struct {
	service  *services.SystemService
	registry *schema.Registry
}

func NewSystemController(service *services.SystemService, registry *schema.Registry) *SystemController {
	return &SystemController{
		service:  service,
		registry: registry,
	}
}

// Root - GET /
// Heartbeat du service
func (c *SystemController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.ServiceInfo())
}

// GetSchema - GET /schema
// Exposition simple des types d'enregistrements pour l'outillage client
func (c *SystemController) GetSchema(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SchemaInfo{
		Collections: c.registry.Kinds(),
	})
}

// TestDatabase - GET /test
// Diagnostic de connectivité ; répond toujours 200, les erreurs sont
// rapportées dans le corps
func (c *SystemController) TestDatabase(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Diagnose(ctx.Request.Context()))
}
