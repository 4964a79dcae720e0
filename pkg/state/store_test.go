package state

import (
	"sync"
	"testing"

	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"github.com/shamank/entitrack-sdk-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devStore() *Store {
	return NewStore(&config.Config{
		Environment:     config.Development,
		BaseEndpoint:    "http://localhost:5000",
		HostBaseAddress: "https://app.example.com:443/foo",
	})
}

func TestBaseEndpoint_Development(t *testing.T) {
	s := devStore()
	assert.Equal(t, "http://localhost:5000", s.BaseEndpoint())
}

func TestBaseEndpoint_Production(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{name: "explicit port", address: "https://app.example.com:443/foo", want: "https://app.example.com:443/"},
		{name: "https default port", address: "https://app.example.com/UI/", want: "https://app.example.com:443/"},
		{name: "http default port", address: "http://localhost/UI", want: "http://localhost:80/"},
		{name: "custom port and query", address: "http://10.0.0.4:3000/UI/?x=1", want: "http://10.0.0.4:3000/"},
		{name: "ipv6 host", address: "http://[::1]:3000/UI/", want: "http://[::1]:3000/"},
		{name: "unknown scheme", address: "app://bundle/index.html", want: "app://bundle/"},
		{name: "relative address", address: "/UI/", want: "/UI/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(&config.Config{
				Environment:     config.Production,
				BaseEndpoint:    "http://localhost:5000",
				HostBaseAddress: tt.address,
			})
			assert.Equal(t, tt.want, s.BaseEndpoint())
		})
	}
}

func TestSetters_NotifyOncePerWrite(t *testing.T) {
	s := devStore()

	var a, b int
	s.Subscribe(func() { a++ })
	s.Subscribe(func() { b++ })

	s.SetSelectedModel("modelA")
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, "modelA", s.SelectedModel())

	s.SetAPIKey("key-1")
	s.SetAvailableModels([]model.ModelInfo{{Name: "models/m1"}})
	assert.Equal(t, 3, a)
	assert.Equal(t, 3, b)
	assert.Equal(t, "key-1", s.APIKey())
}

func TestSetters_OverwriteUnconditionally(t *testing.T) {
	s := devStore()
	var calls int
	s.Subscribe(func() { calls++ })

	s.SetAPIKey("same")
	s.SetAPIKey("same")
	s.SetAPIKey("")

	assert.Equal(t, 3, calls)
	assert.Empty(t, s.APIKey())
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	s := devStore()

	var kept, dropped int
	s.Subscribe(func() { kept++ })
	unsubscribe := s.Subscribe(func() { dropped++ })

	unsubscribe()
	unsubscribe()

	s.SetSelectedModel("modelA")
	assert.Equal(t, 1, kept)
	assert.Equal(t, 0, dropped)
}

func TestListener_CanReadStore(t *testing.T) {
	s := devStore()

	var seen string
	s.Subscribe(func() { seen = s.SelectedModel() })

	s.SetSelectedModel("models/gemini-2.0-flash")
	assert.Equal(t, "models/gemini-2.0-flash", seen)
}

func TestAvailableModels_ReturnsCopy(t *testing.T) {
	s := devStore()

	in := []model.ModelInfo{{Name: "models/a"}, {Name: "models/b"}}
	s.SetAvailableModels(in)
	in[0].Name = "mutated"

	got := s.AvailableModels()
	require.Len(t, got, 2)
	assert.Equal(t, "models/a", got[0].Name)

	got[1].Name = "mutated"
	assert.Equal(t, "models/b", s.AvailableModels()[1].Name)
}

func TestSnapshot(t *testing.T) {
	s := devStore()
	s.SetAPIKey("k")
	s.SetSelectedModel("m")
	s.SetAvailableModels([]model.ModelInfo{{Name: "models/m"}})

	snap := s.Snapshot()
	assert.Equal(t, "http://localhost:5000", snap.BaseEndpoint)
	assert.Equal(t, "k", snap.APIKey)
	assert.Equal(t, "m", snap.SelectedModel)
	assert.Len(t, snap.AvailableModels, 1)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := devStore()

	var mu sync.Mutex
	var calls int
	s.Subscribe(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetAPIKey("k")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, calls)
}
