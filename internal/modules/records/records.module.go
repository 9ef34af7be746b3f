package records

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"matergui-core/internal/infrastructure/database/mongodb"
	"matergui-core/internal/modules/records/controllers"
	"matergui-core/internal/modules/records/schema"
	"matergui-core/internal/modules/records/services"
)

// NewDocumentStore adapte le gateway MongoDB à la vue DocumentStore des services
func NewDocumentStore(gateway *mongodb.DocumentGateway) services.DocumentStore {
	return gateway
}

// Module regroupe tous les providers du domaine Records
var Module = fx.Options(
	// Registre de schémas
	fx.Provide(schema.NewRegistry),

	// Services
	fx.Provide(NewDocumentStore),
	fx.Provide(services.NewMaterguiIDService),
	fx.Provide(services.NewIntegrityService),
	fx.Provide(services.NewAdmissionService),
	fx.Provide(services.NewStatsService),

	// Controllers
	fx.Provide(controllers.NewRecordsController),

	// Configuration des routes
	fx.Invoke(RegisterRecordsRoutes),
)

// RegisterRecordsRoutes configure les routes Gin pour Records.
// Les chemins sont exposés à la racine, contrat public de la plateforme.
func RegisterRecordsRoutes(r *gin.Engine, ctrl *controllers.RecordsController) {
	r.POST("/patients", ctrl.CreatePatient)
	r.GET("/patients", ctrl.ListPatients)

	r.POST("/pregnancies", ctrl.CreatePregnancy)
	r.GET("/pregnancies", ctrl.ListPregnancies)

	r.POST("/visits", ctrl.CreateVisit)
	r.GET("/visits", ctrl.ListVisits)

	r.POST("/appointments", ctrl.CreateAppointment)
	r.GET("/appointments", ctrl.ListAppointments)

	r.POST("/alerts", ctrl.CreateAlert)
	r.GET("/alerts", ctrl.ListAlerts)

	r.POST("/facilities", ctrl.CreateFacility)
	r.GET("/facilities", ctrl.ListFacilities)

	r.POST("/users", ctrl.CreateUser)
	r.GET("/users", ctrl.ListUsers)

	r.GET("/stats", ctrl.GetStats)
}
