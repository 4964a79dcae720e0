// Package sdk provides the high-level entry point for talking to an EntiTrack
// backend.
//
// # Quick Start
//
// Create a Core from a configuration, then use its client and state store:
//
//	import (
//		"github.com/shamank/entitrack-sdk-go/pkg/config"
//		"github.com/shamank/entitrack-sdk-go/pkg/model"
//		"github.com/shamank/entitrack-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		core, err := sdk.New(&config.Config{
//			Environment:  config.Development,
//			BaseEndpoint: "http://localhost:5000",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		models, err := core.RefreshModels(ctx, "YOUR_GOOGLE_AI_STUDIO_KEY")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		res := core.Client().PerformNER(ctx, core.State().APIKey(), models[0].Name,
//			"221 B Baker Street London", []string{"STREET", "CITY"})
//		if !res.Succeeded {
//			log.Fatal(res.ErrorMessage)
//		}
//		fields, _ := model.DecodeHostedNER(res.RawBody)
//		fmt.Println(fields.Text("CITY"))
//	}
//
// # Architecture
//
// Core replaces a process-wide singleton with an explicit object:
//
//   - Config: validated settings (environment, endpoint, timeouts)
//   - State: the state.Store holding the API key, selected model and model
//     list, with change notifications for views
//   - Client: the client.ServiceClient, which reads its endpoint from State
//     and writes proven API keys back into it
//
// A UI subscribes to State to re-render:
//
//	unsubscribe := core.State().Subscribe(func() {
//		redraw(core.State().Snapshot())
//	})
//	defer unsubscribe()
//
// # Logging
//
// The package installs a console zap logger on stderr at info level as the
// global logger. Config.Debug raises it to debug level. Applications may
// replace it with zap.ReplaceGlobals.
package sdk
