// Package sdk exposes the high-level EntiTrack SDK entry point. It wires
// together a validated configuration, the session state store and the
// service client.
package sdk

import (
	"context"
	"fmt"

	"github.com/shamank/entitrack-sdk-go/pkg/client"
	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"github.com/shamank/entitrack-sdk-go/pkg/model"
	"github.com/shamank/entitrack-sdk-go/pkg/state"
	"go.uber.org/zap"
)

// logLevel backs the global logger so New can enable debug output.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the explicit context object shared by UI code: one configuration,
// one state store and one service client per application session.
type Core struct {
	cfg    *config.Config
	store  *state.Store
	client *client.ServiceClient
}

// New validates cfg, applies default timeouts and builds the store and the
// client. Options are passed to the client.
func New(cfg *config.Config, opts ...client.Option) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	if cfg.Debug {
		logLevel.SetLevel(zap.DebugLevel)
	}

	store := state.NewStore(cfg)
	svc := client.New(store, cfg.Timeouts, opts...)

	zap.L().Debug("entitrack sdk ready",
		zap.String("environment", string(cfg.Environment)),
		zap.String("endpoint", store.BaseEndpoint()))

	return &Core{
		cfg:    cfg,
		store:  store,
		client: svc,
	}, nil
}

// Config returns the validated configuration.
func (c *Core) Config() *config.Config {
	return c.cfg
}

// State returns the session state store.
func (c *Core) State() *state.Store {
	return c.store
}

// Client returns the service client bound to State.
func (c *Core) Client() *client.ServiceClient {
	return c.client
}

// RefreshModels lists the models reachable with apiKey and stores them as
// the available models. When the current selection is not among them the
// first model is selected. The key itself is remembered by the client.
func (c *Core) RefreshModels(ctx context.Context, apiKey string) ([]model.ModelInfo, error) {
	res := c.client.ListModels(ctx, apiKey)
	if err := res.Err(); err != nil {
		return nil, err
	}

	models, err := model.DecodeModels(res.RawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}
	c.store.SetAvailableModels(models)

	selected := c.store.SelectedModel()
	for _, m := range models {
		if m.Name == selected {
			return models, nil
		}
	}
	if len(models) > 0 {
		c.store.SetSelectedModel(models[0].Name)
	}
	return models, nil
}
