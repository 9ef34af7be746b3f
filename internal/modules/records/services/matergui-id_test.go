package services

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var materguiIDPattern = regexp.MustCompile(`^MGU-\d{8}-\d{6}$`)

func TestGeneratePatientIDFormat(t *testing.T) {
	svc := NewMaterguiIDService()

	id, err := svc.GeneratePatientID()
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if !materguiIDPattern.MatchString(id) {
		t.Errorf("unexpected identifier format: %s", id)
	}

	parts := strings.Split(id, "-")
	today := time.Now().UTC().Format("20060102")
	if parts[1] != today {
		t.Errorf("date segment = %s, want %s", parts[1], today)
	}
}

func TestGeneratePatientIDSuffixVaries(t *testing.T) {
	svc := NewMaterguiIDService()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := svc.GeneratePatientID()
		if err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		seen[id] = true
	}

	// 50 tirages sur 1e6 valeurs : une seule valeur distincte trahirait un
	// générateur cassé
	if len(seen) < 2 {
		t.Errorf("expected varied identifiers, got %d distinct over 50 draws", len(seen))
	}
}
