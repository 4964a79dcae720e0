package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shamank/entitrack-sdk-go/pkg/model"
)

var (
	opListModels = operation{
		name:    "list_models",
		failure: "Unable to obtain the list of models.",
		cause:   causeAPIKey,
	}
	opPerformNER = operation{
		name:    "perform_genai_ner",
		failure: "Unable to perform Gen AI NER.",
		cause:   causeAPIKey,
	}
)

// ListModels calls GET /gen_ai_ner/list_models_google_studio/{apiKey}.
func (c *ServiceClient) ListModels(ctx context.Context, apiKey string) Result {
	res := c.do(ctx, request{
		op:      opListModels,
		method:  http.MethodGet,
		path:    "/gen_ai_ner/list_models_google_studio/" + segment(apiKey),
		timeout: c.timeouts.Request,
	})
	if res.Succeeded {
		c.state.SetAPIKey(apiKey)
	}
	return res
}

// PerformNER calls POST /gen_ai_ner/perform_ner/{apiKey} with a JSON body.
// modelKey is a hosted model name such as "models/gemini-2.0-flash".
func (c *ServiceClient) PerformNER(ctx context.Context, apiKey, modelKey, text string, fields []string) Result {
	if fields == nil {
		fields = []string{}
	}
	payload, err := json.Marshal(model.HostedNERRequest{
		TextToCheck: text,
		ModelKey:    modelKey,
		NERFields:   fields,
	})
	if err != nil {
		return Result{ErrorMessage: opPerformNER.message(fmt.Errorf("failed to marshal request: %w", err))}
	}

	res := c.do(ctx, request{
		op:          opPerformNER,
		method:      http.MethodPost,
		path:        "/gen_ai_ner/perform_ner/" + segment(apiKey),
		body:        bytes.NewReader(payload),
		contentType: "application/json; charset=utf-8",
		timeout:     c.timeouts.Request,
	})
	if res.Succeeded {
		c.state.SetAPIKey(apiKey)
	}
	return res
}
