package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"matergui-core/internal/app/config"
	"matergui-core/internal/infrastructure/database/mongodb"
	"matergui-core/internal/modules/records/schema"
	"matergui-core/internal/modules/system/services"
)

func newSystemRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewSystemService(cfg, &mongodb.Client{}, nil)
	ctrl := NewSystemController(service, schema.NewRegistry())

	r := gin.New()
	r.GET("/", ctrl.Root)
	r.GET("/schema", ctrl.GetSchema)
	r.GET("/test", ctrl.TestDatabase)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRootHeartbeat(t *testing.T) {
	r := newSystemRouter(&config.Config{})

	rec := get(t, r, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Name      string `json:"name"`
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Name != "MaterGui API" {
		t.Errorf("name = %q", body.Name)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Timestamp == "" {
		t.Error("missing timestamp")
	}
}

func TestSchemaListsAllCollections(t *testing.T) {
	r := newSystemRouter(&config.Config{})

	rec := get(t, r, "/schema")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Collections []string `json:"collections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"user", "facility", "patient", "pregnancy", "visit", "appointment", "alert"}
	if len(body.Collections) != len(want) {
		t.Fatalf("got %d collections, want %d: %v", len(body.Collections), len(want), body.Collections)
	}
	for i, name := range want {
		if body.Collections[i] != name {
			t.Errorf("collections[%d] = %q, want %q", i, body.Collections[i], name)
		}
	}
}

func TestDiagnosticWithoutStoreStillResponds(t *testing.T) {
	r := newSystemRouter(&config.Config{})

	rec := get(t, r, "/test")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body["backend"] != "✅ Running" {
		t.Errorf("backend = %v", body["backend"])
	}
	if body["database"] != "❌ Not Available" {
		t.Errorf("database = %v", body["database"])
	}
	if body["database_url"] != "❌ Not Set" {
		t.Errorf("database_url = %v", body["database_url"])
	}
	if cols, ok := body["collections"].([]interface{}); !ok || len(cols) != 0 {
		t.Errorf("collections = %v, want empty array", body["collections"])
	}
}

func TestDiagnosticReportsConfiguredURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.MongoDB.URI = "mongodb://localhost:27017"
	cfg.MongoDB.Database = "matergui"
	r := newSystemRouter(cfg)

	rec := get(t, r, "/test")

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body["database_url"] != "✅ Set" {
		t.Errorf("database_url = %v", body["database_url"])
	}
	if body["database_name"] != "matergui" {
		t.Errorf("database_name = %v", body["database_name"])
	}
}
