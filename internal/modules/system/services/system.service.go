package services

import (
	"context"
	"time"

	"matergui-core/internal/app/config"
	"matergui-core/internal/infrastructure/database/mongodb"
	"matergui-core/internal/infrastructure/database/redis"
	"matergui-core/internal/modules/system/dto"
)

const serviceName = "MaterGui API"

// maxDiagnosticCollections borne la liste de collections retournée par /test
const maxDiagnosticCollections = 20

// SystemService fournit le heartbeat et le diagnostic de connectivité
type SystemService struct {
	config *config.Config
	mongo  *mongodb.Client
	redis  *redis.Client
}

func NewSystemService(cfg *config.Config, mongo *mongodb.Client, redisClient *redis.Client) *SystemService {
	return &SystemService{
		config: cfg,
		mongo:  mongo,
		redis:  redisClient,
	}
}

// ServiceInfo retourne l'identité du service et l'horodatage UTC courant
func (s *SystemService) ServiceInfo() dto.ServiceInfo {
	return dto.ServiceInfo{
		Name:      serviceName,
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}
}

// Diagnose construit le rapport de connectivité. Aucune erreur n'est
// propagée : chaque anomalie est rapportée comme texte dans le champ concerné.
func (s *SystemService) Diagnose(ctx context.Context) dto.DiagnosticReport {
	report := dto.DiagnosticReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      "❌ Not Set",
		DatabaseName:     "❌ Not Set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Redis:            "❌ Not Available",
	}

	if s.config.MongoDB.URI != "" {
		report.DatabaseURL = "✅ Set"
	}
	if s.config.MongoDB.Database != "" {
		report.DatabaseName = s.config.MongoDB.Database
	}

	if s.mongo.Available() {
		if err := s.mongo.Ping(ctx); err != nil {
			report.Database = "❌ Error: " + truncateError(err)
		} else {
			report.Database = "✅ Connected & Working"
			report.ConnectionStatus = "Connected"

			names, err := s.mongo.ListCollectionNames(ctx)
			if err != nil {
				report.Database = "⚠️ Connected but error listing collections: " + truncateError(err)
			} else {
				if len(names) > maxDiagnosticCollections {
					names = names[:maxDiagnosticCollections]
				}
				report.Collections = names
			}
		}
	}

	if s.redis.Available() {
		if err := s.redis.Ping(ctx); err == nil {
			report.Redis = "✅ Connected"
		} else {
			report.Redis = "❌ Error: " + truncateError(err)
		}
	}

	return report
}

func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > 80 {
		return msg[:80]
	}
	return msg
}
