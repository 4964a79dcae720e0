package sdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/shamank/entitrack-sdk-go/internal/testutil/fakeapi"
	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"github.com/shamank/entitrack-sdk-go/pkg/model"
)

func newCore(t *testing.T) (*Core, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	core, err := New(&config.Config{
		Environment:  config.Development,
		BaseEndpoint: srv.URL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return core, srv
}

func TestNew_WiresComponents(t *testing.T) {
	core, srv := newCore(t)

	if core.State() == nil || core.Client() == nil {
		t.Fatal("expected store and client to be set")
	}
	if got := core.State().BaseEndpoint(); got != srv.URL {
		t.Fatalf("BaseEndpoint() = %q, want %q", got, srv.URL)
	}
	if core.Config().Timeouts.Request == 0 {
		t.Fatal("expected default request timeout to be applied")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(&config.Config{Environment: config.Development}); err == nil {
		t.Fatal("expected error for development config without endpoint")
	}
}

func TestClientWritesKeyIntoStore(t *testing.T) {
	core, _ := newCore(t)

	var notified int
	core.State().Subscribe(func() { notified++ })

	res := core.Client().ListModels(context.Background(), "K")
	if !res.Succeeded {
		t.Fatalf("ListModels failed: %s", res.ErrorMessage)
	}
	if got := core.State().APIKey(); got != "K" {
		t.Fatalf("APIKey() = %q, want K", got)
	}
	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
}

func TestRefreshModels_StoresAndSelects(t *testing.T) {
	core, srv := newCore(t)
	srv.Respond(fakeapi.ListModels, http.StatusOK,
		`[{"name":"models/a","display_name":"A"},{"name":"models/b","display_name":"B"}]`)

	models, err := core.RefreshModels(context.Background(), "K")
	if err != nil {
		t.Fatalf("RefreshModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models", len(models))
	}

	st := core.State()
	if len(st.AvailableModels()) != 2 {
		t.Fatalf("AvailableModels() = %v", st.AvailableModels())
	}
	if st.SelectedModel() != "models/a" {
		t.Fatalf("SelectedModel() = %q, want models/a", st.SelectedModel())
	}
	if st.APIKey() != "K" {
		t.Fatalf("APIKey() = %q, want K", st.APIKey())
	}

	st.SetSelectedModel("models/b")
	if _, err := core.RefreshModels(context.Background(), "K"); err != nil {
		t.Fatal(err)
	}
	if st.SelectedModel() != "models/b" {
		t.Fatalf("selection overwritten: %q", st.SelectedModel())
	}
}

func TestRefreshModels_Failure(t *testing.T) {
	core, srv := newCore(t)
	core.State().SetAPIKey("old")
	core.State().SetAvailableModels([]model.ModelInfo{{Name: "models/kept"}})
	srv.Respond(fakeapi.ListModels, http.StatusUnauthorized, `{"message":"Invalid API key"}`)

	if _, err := core.RefreshModels(context.Background(), "bad"); err == nil {
		t.Fatal("expected error")
	}
	if core.State().APIKey() != "old" {
		t.Fatalf("APIKey() = %q, want old", core.State().APIKey())
	}
	if got := core.State().AvailableModels(); len(got) != 1 || got[0].Name != "models/kept" {
		t.Fatalf("AvailableModels() = %v", got)
	}
}

func TestRefreshModels_BadBody(t *testing.T) {
	core, srv := newCore(t)
	srv.Respond(fakeapi.ListModels, http.StatusOK, `{"unexpected":"object"}`)

	if _, err := core.RefreshModels(context.Background(), "K"); err == nil {
		t.Fatal("expected decode error")
	}
}
