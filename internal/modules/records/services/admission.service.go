package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matergui-core/internal/modules/records/dto"
	"matergui-core/internal/modules/records/schema"
)

// AdmissionService est le point d'orchestration unique entre un
// enregistrement soumis par un client et le document persisté :
// validation → attribution d'identifiant (patiente) → contrôle
// d'intégrité référentielle (grossesse, visite) → insertion unique.
// Aucune étape n'est rejouée ; tout échec abandonne l'admission sans
// écriture partielle (l'insertion est la seule écriture).
type AdmissionService struct {
	registry  *schema.Registry
	store     DocumentStore
	ids       *MaterguiIDService
	integrity *IntegrityService
}

func NewAdmissionService(
	registry *schema.Registry,
	store DocumentStore,
	ids *MaterguiIDService,
	integrity *IntegrityService,
) *AdmissionService {
	return &AdmissionService{
		registry:  registry,
		store:     store,
		ids:       ids,
		integrity: integrity,
	}
}

// AdmitRecord admet un enregistrement du type demandé et retourne les
// identifiants attribués
func (s *AdmissionService) AdmitRecord(ctx context.Context, kind string, payload map[string]interface{}) (*dto.AdmissionResult, error) {
	if !s.store.Available() {
		return nil, NewStoreUnavailableError()
	}

	def, ok := s.registry.Definition(kind)
	if !ok {
		return nil, fmt.Errorf("type d'enregistrement inconnu: %s", kind)
	}

	doc, fieldErrors := s.registry.Validate(kind, payload)
	if len(fieldErrors) > 0 {
		return nil, NewValidationError(fieldErrors)
	}

	result := &dto.AdmissionResult{}

	switch kind {
	case schema.KindPatient:
		if current, _ := doc["matergui_id"].(string); current == "" {
			generated, err := s.ids.GeneratePatientID()
			if err != nil {
				return nil, err
			}
			doc["matergui_id"] = generated
		}
		result.MaterguiID = doc["matergui_id"].(string)

	case schema.KindPregnancy:
		patientID, _ := doc["patient_id"].(string)
		if err := s.integrity.EnsureParentExists(ctx, schema.KindPatient,
			"patient_id", patientID, "Patient introuvable"); err != nil {
			return nil, err
		}

	case schema.KindVisit:
		pregnancyID, _ := doc["pregnancy_id"].(string)
		if err := s.integrity.EnsureParentExists(ctx, schema.KindPregnancy,
			"pregnancy_id", pregnancyID, "Grossesse introuvable"); err != nil {
			return nil, err
		}
	}
	// appointment et alert portent un patient_id non vérifié, limitation
	// assumée du modèle de données

	id, err := s.store.InsertDocument(ctx, def.Collection(), doc)
	if err != nil {
		return nil, fmt.Errorf("échec insertion %s: %w", kind, err)
	}

	result.ID = id
	return result, nil
}

// ListRecords retourne au plus limit documents du type demandé
func (s *AdmissionService) ListRecords(ctx context.Context, kind string, limit int64) ([]bson.M, error) {
	if !s.store.Available() {
		return nil, NewStoreUnavailableError()
	}

	def, ok := s.registry.Definition(kind)
	if !ok {
		return nil, fmt.Errorf("type d'enregistrement inconnu: %s", kind)
	}

	docs, err := s.store.FindDocuments(ctx, def.Collection(), bson.M{}, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("échec lecture %s: %w", kind, err)
	}

	for _, doc := range docs {
		normalizeDocument(doc)
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs, nil
}

// normalizeDocument convertit les types BSON bruts vers des valeurs
// sérialisables proprement en JSON (dates BSON → time.Time UTC)
func normalizeDocument(doc bson.M) {
	for key, value := range doc {
		if d, ok := value.(primitive.DateTime); ok {
			doc[key] = d.Time().UTC()
		}
	}
}
