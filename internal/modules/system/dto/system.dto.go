package dto

import "time"

// ServiceInfo est la réponse du heartbeat GET /
type ServiceInfo struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// SchemaInfo expose la liste des types d'enregistrements pour l'outillage client
type SchemaInfo struct {
	Collections []string `json:"collections"`
}

// DiagnosticReport est la réponse de GET /test. L'endpoint ne fait jamais
// échouer la requête : les erreurs sont rapportées en texte dans la réponse.
type DiagnosticReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Redis            string   `json:"redis"`
}
