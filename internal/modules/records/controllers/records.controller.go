package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matergui-core/internal/modules/records/schema"
	"matergui-core/internal/modules/records/services"
)

const defaultListLimit = 50

// RecordsController expose les endpoints d'admission et de consultation des
// enregistrements du dossier maternel
type RecordsController struct {
	admission *services.AdmissionService
	stats     *services.StatsService
}

func NewRecordsController(admission *services.AdmissionService, stats *services.StatsService) *RecordsController {
	return &RecordsController{
		admission: admission,
		stats:     stats,
	}
}

// CreatePatient - POST /patients
// Retourne l'identifiant de stockage et l'identifiant public attribué
func (c *RecordsController) CreatePatient(ctx *gin.Context) {
	c.admit(ctx, schema.KindPatient)
}

// ListPatients - GET /patients?limit=N
func (c *RecordsController) ListPatients(ctx *gin.Context) {
	c.list(ctx, schema.KindPatient)
}

// CreatePregnancy - POST /pregnancies
// L'admission vérifie que patient_id résout vers une patiente existante
func (c *RecordsController) CreatePregnancy(ctx *gin.Context) {
	c.admit(ctx, schema.KindPregnancy)
}

// ListPregnancies - GET /pregnancies?limit=N
func (c *RecordsController) ListPregnancies(ctx *gin.Context) {
	c.list(ctx, schema.KindPregnancy)
}

// CreateVisit - POST /visits
// L'admission vérifie que pregnancy_id résout vers une grossesse existante
func (c *RecordsController) CreateVisit(ctx *gin.Context) {
	c.admit(ctx, schema.KindVisit)
}

// ListVisits - GET /visits?limit=N
func (c *RecordsController) ListVisits(ctx *gin.Context) {
	c.list(ctx, schema.KindVisit)
}

// CreateAppointment - POST /appointments
func (c *RecordsController) CreateAppointment(ctx *gin.Context) {
	c.admit(ctx, schema.KindAppointment)
}

// ListAppointments - GET /appointments?limit=N
func (c *RecordsController) ListAppointments(ctx *gin.Context) {
	c.list(ctx, schema.KindAppointment)
}

// CreateAlert - POST /alerts
func (c *RecordsController) CreateAlert(ctx *gin.Context) {
	c.admit(ctx, schema.KindAlert)
}

// ListAlerts - GET /alerts?limit=N
func (c *RecordsController) ListAlerts(ctx *gin.Context) {
	c.list(ctx, schema.KindAlert)
}

// CreateFacility - POST /facilities
func (c *RecordsController) CreateFacility(ctx *gin.Context) {
	c.admit(ctx, schema.KindFacility)
}

// ListFacilities - GET /facilities?limit=N
func (c *RecordsController) ListFacilities(ctx *gin.Context) {
	c.list(ctx, schema.KindFacility)
}

// CreateUser - POST /users
func (c *RecordsController) CreateUser(ctx *gin.Context) {
	c.admit(ctx, schema.KindUser)
}

// ListUsers - GET /users?limit=N
func (c *RecordsController) ListUsers(ctx *gin.Context) {
	c.list(ctx, schema.KindUser)
}

// GetStats - GET /stats
// Rapport agrégé du tableau de bord
func (c *RecordsController) GetStats(ctx *gin.Context) {
	stats, err := c.stats.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// admit déroule le pipeline d'admission pour un type d'enregistrement
func (c *RecordsController) admit(ctx *gin.Context, kind string) {
	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Données invalides",
			"details": map[string]interface{}{
				"binding_error": err.Error(),
			},
		})
		return
	}

	result, err := c.admission.AdmitRecord(ctx.Request.Context(), kind, payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// list retourne les documents du type demandé, limite par défaut 50
func (c *RecordsController) list(ctx *gin.Context, kind string) {
	limit := int64(defaultListLimit)
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	docs, err := c.admission.ListRecords(ctx.Request.Context(), kind, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, docs)
}

// respondError traduit la taxonomie d'erreurs d'admission en statut HTTP
func respondError(ctx *gin.Context, err error) {
	var admErr *services.AdmissionError
	if errors.As(err, &admErr) {
		body := gin.H{"error": admErr.Message}

		var status int
		switch admErr.Type {
		case services.ErrTypeValidation:
			status = http.StatusBadRequest
			body["fields"] = admErr.Fields
		case services.ErrTypeInvalidReference:
			status = http.StatusBadRequest
		case services.ErrTypeNotFound:
			status = http.StatusNotFound
		default: // store_unavailable
			status = http.StatusInternalServerError
		}

		ctx.JSON(status, body)
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error": "Erreur interne",
		"details": map[string]interface{}{
			"error_message": err.Error(),
		},
	})
}
