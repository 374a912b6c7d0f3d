package zwavegen_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	zwavegen "github.com/goliatone/go-zwavegen"
	"github.com/goliatone/go-zwavegen/pkg/config"
	"github.com/goliatone/go-zwavegen/pkg/orchestrator"
	"github.com/goliatone/go-zwavegen/pkg/registry"
	"github.com/goliatone/go-zwavegen/pkg/testsupport"
)

var (
	recordPath = filepath.Join("internal", "manifest", "testdata", "product_record.json")
	goldenPath = filepath.Join("internal", "manifest", "testdata", "product_manifest.golden.json")
)

func TestBuildManifestMatchesGolden(t *testing.T) {
	record := testsupport.LoadRecord(t, recordPath)
	fragment := zwavegen.BuildManifest(record)

	got := map[string]any{"zwave": fragment, "settings": fragment.Settings}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareJSON(t, want, got); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchManifestFromConfig(t *testing.T) {
	body, err := os.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/p/1234" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Registry.ProductURL = server.URL + "/p/%s"
	cfg.Manifest.Locale = "nl"

	options, err := zwavegen.OptionsFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	fragment, err := zwavegen.FetchManifest(testsupport.Context(), "1234", options...)
	if err != nil {
		t.Fatalf("fetch manifest: %v", err)
	}
	if len(fragment.Settings) != 3 {
		t.Fatalf("settings = %d, want 3", len(fragment.Settings))
	}
	if got := fragment.Settings[0].Label["nl"]; got != "LED indicator" {
		t.Fatalf("expected nl label, got %v", fragment.Settings[0].Label)
	}

	_, err = zwavegen.FetchManifest(testsupport.Context(), "9", options...)
	if err == nil {
		t.Fatalf("expected lookup failure")
	}
	if !errors.Is(err, registry.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestOptionsFromConfigRejectsBadTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.Timeout = "later"
	if _, err := zwavegen.OptionsFromConfig(cfg, nil); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestNewOrchestrator(t *testing.T) {
	if zwavegen.NewOrchestrator(orchestrator.WithImagePath("img.jpeg")) == nil {
		t.Fatalf("expected orchestrator")
	}
}
