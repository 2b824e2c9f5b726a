package docs

import (
	"encoding/json"
	"testing"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Pump Radar API" {
		t.Fatalf("unexpected title %q", SwaggerInfo.Title)
	}
}

func TestSwaggerDocIsValidJSON(t *testing.T) {
	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("invalid swagger json: %v", err)
	}
	for _, p := range []string{"/health", "/api/signals", "/api/signals/extract", "/api/mentions/classify", "/api/dictionaries/rebuild", "/api/dictionaries/latest", "/api/tickers", "/api/groups/{id}/kind"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}
}
