package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"matergui-core/internal/modules/records/schema"
)

func newAdmissionService(store DocumentStore) *AdmissionService {
	return NewAdmissionService(
		schema.NewRegistry(),
		store,
		NewMaterguiIDService(),
		NewIntegrityService(store),
	)
}

func admissionErrorType(t *testing.T, err error) string {
	t.Helper()
	var admErr *AdmissionError
	if !errors.As(err, &admErr) {
		t.Fatalf("expected *AdmissionError, got %T: %v", err, err)
	}
	return admErr.Type
}

func TestAdmitPatientAssignsPublicID(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	result, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"first_name": "Aïssatou",
		"last_name":  "Camara",
	})
	if err != nil {
		t.Fatalf("admission failed: %v", err)
	}

	if result.ID == "" {
		t.Error("expected a storage id")
	}
	pattern := regexp.MustCompile(`^MGU-\d{8}-\d{6}$`)
	if !pattern.MatchString(result.MaterguiID) {
		t.Errorf("unexpected matergui_id: %s", result.MaterguiID)
	}

	docs := store.collections["patient"]
	if len(docs) != 1 {
		t.Fatalf("expected 1 stored patient, got %d", len(docs))
	}
	if docs[0]["matergui_id"] != result.MaterguiID {
		t.Errorf("stored matergui_id = %v, want %s", docs[0]["matergui_id"], result.MaterguiID)
	}
}

func TestAdmitPatientKeepsProvidedPublicID(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	result, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"matergui_id": "MGU-20240101-000042",
		"first_name":  "Mariama",
		"last_name":   "Diallo",
	})
	if err != nil {
		t.Fatalf("admission failed: %v", err)
	}

	if result.MaterguiID != "MGU-20240101-000042" {
		t.Errorf("matergui_id = %s, want the provided one", result.MaterguiID)
	}
}

func TestAdmitPatientTwiceCreatesTwoDocuments(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	payload := map[string]interface{}{
		"first_name": "Fatoumata",
		"last_name":  "Barry",
	}

	first, err := svc.AdmitRecord(context.Background(), schema.KindPatient, payload)
	if err != nil {
		t.Fatalf("first admission failed: %v", err)
	}
	second, err := svc.AdmitRecord(context.Background(), schema.KindPatient, payload)
	if err != nil {
		t.Fatalf("second admission failed: %v", err)
	}

	// Aucune idempotence : deux soumissions identiques, deux documents
	if first.ID == second.ID {
		t.Error("expected two distinct storage ids")
	}
	if len(store.collections["patient"]) != 2 {
		t.Errorf("expected 2 stored patients, got %d", len(store.collections["patient"]))
	}
}

func TestAdmitPatientValidationFailure(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	_, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"first_name": "Aminata",
	})
	if got := admissionErrorType(t, err); got != ErrTypeValidation {
		t.Errorf("error type = %s, want %s", got, ErrTypeValidation)
	}

	if len(store.collections["patient"]) != 0 {
		t.Error("validation failure must not persist anything")
	}
}

func TestAdmitPregnancyUnknownPatient(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	_, err := svc.AdmitRecord(context.Background(), schema.KindPregnancy, map[string]interface{}{
		"patient_id": primitive.NewObjectID().Hex(),
	})
	if got := admissionErrorType(t, err); got != ErrTypeNotFound {
		t.Errorf("error type = %s, want %s", got, ErrTypeNotFound)
	}
	if err.Error() != "Patient introuvable" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	if len(store.collections["pregnancy"]) != 0 {
		t.Error("failed integrity check must not persist anything")
	}
}

func TestAdmitPregnancyMalformedPatientID(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	_, err := svc.AdmitRecord(context.Background(), schema.KindPregnancy, map[string]interface{}{
		"patient_id": "pas-un-identifiant",
	})

	// Identifiant mal formé : erreur client, pas un not-found
	if got := admissionErrorType(t, err); got != ErrTypeInvalidReference {
		t.Errorf("error type = %s, want %s", got, ErrTypeInvalidReference)
	}
	if err.Error() != "patient_id invalide" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestAdmitPregnancyResolvesParentAndAppliesDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	patient, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"first_name": "Kadiatou",
		"last_name":  "Soumah",
	})
	if err != nil {
		t.Fatalf("patient admission failed: %v", err)
	}

	result, err := svc.AdmitRecord(context.Background(), schema.KindPregnancy, map[string]interface{}{
		"patient_id":        patient.ID,
		"expected_due_date": "2026-11-20",
	})
	if err != nil {
		t.Fatalf("pregnancy admission failed: %v", err)
	}
	if result.ID == "" {
		t.Error("expected a storage id")
	}

	doc := store.collections["pregnancy"][0]
	if doc["parity"] != int64(0) || doc["gravida"] != int64(1) {
		t.Errorf("defaults not applied: parity=%v gravida=%v", doc["parity"], doc["gravida"])
	}
	if doc["risk_level"] != "faible" || doc["status"] != "en_cours" {
		t.Errorf("defaults not applied: risk_level=%v status=%v", doc["risk_level"], doc["status"])
	}
}

func TestAdmitVisitRejectsVitalsBeforeIntegrityCheck(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	// pregnancy_id mal formé ET tension hors plage : la validation doit
	// rejeter avant même d'atteindre le contrôle d'intégrité
	_, err := svc.AdmitRecord(context.Background(), schema.KindVisit, map[string]interface{}{
		"pregnancy_id":            "pas-un-identifiant",
		"blood_pressure_systolic": float64(400),
	})
	if got := admissionErrorType(t, err); got != ErrTypeValidation {
		t.Errorf("error type = %s, want %s", got, ErrTypeValidation)
	}

	if len(store.collections["visit"]) != 0 {
		t.Error("rejected visit must not persist anything")
	}
}

func TestAdmitVisitDefaultsVisitDate(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	patient, _ := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"first_name": "Hawa",
		"last_name":  "Bah",
	})
	pregnancy, err := svc.AdmitRecord(context.Background(), schema.KindPregnancy, map[string]interface{}{
		"patient_id": patient.ID,
	})
	if err != nil {
		t.Fatalf("pregnancy admission failed: %v", err)
	}

	_, err = svc.AdmitRecord(context.Background(), schema.KindVisit, map[string]interface{}{
		"pregnancy_id": pregnancy.ID,
		"weight_kg":    62.5,
	})
	if err != nil {
		t.Fatalf("visit admission failed: %v", err)
	}

	doc := store.collections["visit"][0]
	visitDate, ok := doc["visit_date"].(time.Time)
	if !ok {
		t.Fatalf("visit_date = %T, want time.Time", doc["visit_date"])
	}
	now := time.Now().UTC()
	if visitDate.Year() != now.Year() || visitDate.Month() != now.Month() || visitDate.Day() != now.Day() {
		t.Errorf("visit_date = %v, want today UTC", visitDate)
	}
}

func TestAdmitAlertRequiresMessage(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	_, err := svc.AdmitRecord(context.Background(), schema.KindAlert, map[string]interface{}{
		"patient_id": primitive.NewObjectID().Hex(),
		"message":    "   ",
	})
	if got := admissionErrorType(t, err); got != ErrTypeValidation {
		t.Errorf("error type = %s, want %s", got, ErrTypeValidation)
	}
}

func TestAdmitAlertSkipsIntegrityCheck(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	// patient_id non vérifié pour les alertes : l'admission passe même si
	// aucune patiente ne correspond
	result, err := svc.AdmitRecord(context.Background(), schema.KindAlert, map[string]interface{}{
		"patient_id": primitive.NewObjectID().Hex(),
		"message":    "Tension élevée signalée",
	})
	if err != nil {
		t.Fatalf("alert admission failed: %v", err)
	}
	if result.ID == "" {
		t.Error("expected a storage id")
	}

	doc := store.collections["alert"][0]
	if doc["type"] != "rappel" {
		t.Errorf("default type = %v, want rappel", doc["type"])
	}
}

func TestAdmitStoreUnavailable(t *testing.T) {
	store := newFakeStore()
	store.unavailable = true
	svc := newAdmissionService(store)

	_, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
		"first_name": "Salématou",
		"last_name":  "Sylla",
	})
	if got := admissionErrorType(t, err); got != ErrTypeStoreUnavailable {
		t.Errorf("error type = %s, want %s", got, ErrTypeStoreUnavailable)
	}
}

func TestListRecordsAppliesLimit(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	for i := 0; i < 5; i++ {
		if _, err := svc.AdmitRecord(context.Background(), schema.KindPatient, map[string]interface{}{
			"first_name": "Patient",
			"last_name":  "Test",
		}); err != nil {
			t.Fatalf("admission failed: %v", err)
		}
	}

	docs, err := svc.ListRecords(context.Background(), schema.KindPatient, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("got %d documents, want 3", len(docs))
	}
}

func TestListRecordsEmptyCollection(t *testing.T) {
	store := newFakeStore()
	svc := newAdmissionService(store)

	docs, err := svc.ListRecords(context.Background(), schema.KindVisit, 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if docs == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}
