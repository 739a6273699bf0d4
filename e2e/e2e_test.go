package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func TestE2E_PresetWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	session := app.New(app.Config{})

	srv := server.New(server.Config{Store: s, Session: session})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var presetID string

	t.Run("CreatePreset", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/presets",
			"application/json",
			strings.NewReader(`{"name": "overview", "azimuth": 1.5, "distance": 16}`),
		)
		if err != nil {
			t.Fatalf("create preset error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		presetID = created.ID
	})

	t.Run("RecallPreset", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/presets/"+presetID+"/recall", "application/json", nil)
		if err != nil {
			t.Fatalf("recall error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		// Recall glides; run the damping ticks the render loop would.
		for i := 0; i < 500; i++ {
			session.Orbit().DampingStep()
		}
		if az := session.Orbit().Azimuth(); az < 1.4 {
			t.Errorf("azimuth = %f, want ~1.5", az)
		}
	})

	t.Run("ViewReflectsCamera", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/view")
		if err != nil {
			t.Fatalf("get view error = %v", err)
		}
		defer resp.Body.Close()

		var view map[string]float64
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if view["azimuth"] < 1.4 {
			t.Errorf("azimuth = %f, want ~1.5", view["azimuth"])
		}
	})

	t.Run("StatusEndpoint", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/status")
		if err != nil {
			t.Fatalf("get status error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})
}
