// Package state holds the session configuration shared between UI code and
// the service client: the backend endpoint, the API key proven to work, the
// selected model and the last fetched model list. Every write notifies the
// subscribed listeners so dependent views can refresh.
package state

import (
	"net/url"
	"strings"
	"sync"

	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"github.com/shamank/entitrack-sdk-go/pkg/model"
	"go.uber.org/zap"
)

// Listener is called after every state change. It receives no payload; it
// reads whatever it needs back from the store.
type Listener func()

// Snapshot is a point-in-time copy of the store fields.
type Snapshot struct {
	BaseEndpoint    string
	APIKey          string
	SelectedModel   string
	AvailableModels []model.ModelInfo
}

// Store is the in-memory session state. The zero value is not usable; build
// one with NewStore. Store is safe for concurrent use.
type Store struct {
	cfg *config.Config

	mu              sync.RWMutex
	apiKey          string
	selectedModel   string
	availableModels []model.ModelInfo

	lmu       sync.Mutex
	nextID    uint64
	listeners map[uint64]Listener
}

// NewStore creates an empty store that derives its endpoint from cfg.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		cfg:       cfg,
		listeners: make(map[uint64]Listener),
	}
}

// BaseEndpoint returns the backend URL. In development it is the configured
// override verbatim; otherwise it is "scheme://host:port/" of the host base
// address, with the scheme's default port filled in. An address that does
// not parse is returned unchanged.
func (s *Store) BaseEndpoint() string {
	if s.cfg.IsDevelopment() {
		return s.cfg.BaseEndpoint
	}
	return originOf(s.cfg.HostBaseAddress)
}

func originOf(address string) string {
	u, err := url.Parse(address)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		zap.L().Warn("host base address is not an absolute URL", zap.String("address", address))
		return address
	}
	port := u.Port()
	if port == "" {
		port = defaultPort(u.Scheme)
	}
	host := u.Hostname()
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port == "" {
		return u.Scheme + "://" + host + "/"
	}
	return u.Scheme + "://" + host + ":" + port + "/"
}

func defaultPort(scheme string) string {
	switch strings.ToLower(scheme) {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	}
	return ""
}

// APIKey returns the API key of the hosted provider, or "" if none was set.
func (s *Store) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// SetAPIKey overwrites the API key and notifies listeners.
func (s *Store) SetAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
	s.notify()
}

// SelectedModel returns the key of the model chosen for hosted NER.
func (s *Store) SelectedModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedModel
}

// SetSelectedModel overwrites the selected model key and notifies listeners.
func (s *Store) SetSelectedModel(key string) {
	s.mu.Lock()
	s.selectedModel = key
	s.mu.Unlock()
	s.notify()
}

// AvailableModels returns a copy of the last stored model list.
func (s *Store) AvailableModels() []model.ModelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ModelInfo, len(s.availableModels))
	copy(out, s.availableModels)
	return out
}

// SetAvailableModels replaces the model list and notifies listeners.
func (s *Store) SetAvailableModels(models []model.ModelInfo) {
	cp := make([]model.ModelInfo, len(models))
	copy(cp, models)

	s.mu.Lock()
	s.availableModels = cp
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a copy of every field.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		BaseEndpoint:    s.BaseEndpoint(),
		APIKey:          s.APIKey(),
		SelectedModel:   s.SelectedModel(),
		AvailableModels: s.AvailableModels(),
	}
}

// Subscribe registers fn to be called after every change and returns a
// function that removes it. Calling the returned function more than once is
// harmless. Listeners are called synchronously in no particular order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// notify runs outside both locks so listeners may read or write the store.
func (s *Store) notify() {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
