package services

import (
	"fmt"

	"matergui-core/internal/modules/records/schema"
)

// Taxonomie des erreurs d'admission, traduites en statut HTTP par les
// controllers : store_unavailable → 500, validation → 400 (liste complète
// des champs en violation), invalid_reference → 400, not_found → 404.
const (
	ErrTypeStoreUnavailable = "store_unavailable"
	ErrTypeValidation       = "validation"
	ErrTypeInvalidReference = "invalid_reference"
	ErrTypeNotFound         = "not_found"
)

// AdmissionError - Erreur métier commune aux services du module records
type AdmissionError struct {
	Type    string              `json:"type"`
	Message string              `json:"message"`
	Fields  []schema.FieldError `json:"fields,omitempty"`
}

func (e *AdmissionError) Error() string {
	return e.Message
}

func NewStoreUnavailableError() *AdmissionError {
	return &AdmissionError{
		Type:    ErrTypeStoreUnavailable,
		Message: "Base de données indisponible. Vérifiez DATABASE_URL et DATABASE_NAME.",
	}
}

func NewValidationError(fields []schema.FieldError) *AdmissionError {
	return &AdmissionError{
		Type:    ErrTypeValidation,
		Message: "Validation échouée",
		Fields:  fields,
	}
}

func NewInvalidReferenceError(field string) *AdmissionError {
	return &AdmissionError{
		Type:    ErrTypeInvalidReference,
		Message: fmt.Sprintf("%s invalide", field),
	}
}

func NewNotFoundError(message string) *AdmissionError {
	return &AdmissionError{
		Type:    ErrTypeNotFound,
		Message: message,
	}
}
