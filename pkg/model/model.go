// Package model defines the records exchanged with the EntiTrack backend:
// hosted model descriptors, extracted entities, training sessions and their
// evaluation metrics. Field tags mirror the backend JSON names exactly so the
// raw bodies returned by the service client can be decoded directly.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModelInfo describes a generative model offered by the hosted provider.
type ModelInfo struct {
	Name             string `json:"name" yaml:"name"` // model key, e.g. "models/gemini-2.0-flash"
	DisplayName      string `json:"display_name" yaml:"display_name"`
	Description      string `json:"description" yaml:"description"`
	InputTokenLimit  string `json:"input_token_limit" yaml:"input_token_limit"`
	OutputTokenLimit string `json:"output_token_limit" yaml:"output_token_limit"`
}

// Key returns the model name without the "models/" prefix.
func (m ModelInfo) Key() string {
	return strings.TrimPrefix(m.Name, "models/")
}

// HostedNERRequest is the JSON body of a hosted-model NER call.
type HostedNERRequest struct {
	TextToCheck string   `json:"text_to_check"`
	ModelKey    string   `json:"model_key"`
	NERFields   []string `json:"ner_fields"`
}

// HostedNERResult maps each requested NER field to the value the model
// extracted for it. Values are usually strings but the model may emit lists
// or nulls, so they are kept untyped.
type HostedNERResult map[string]any

// Fields returns the result keys in lexical order.
func (r HostedNERResult) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text renders the value of field as display text. Missing and null values
// render as the empty string.
func (r HostedNERResult) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// EntityDetail is one entity found by a trained session model. Offsets are
// character positions in the submitted text, end exclusive.
type EntityDetail struct {
	Label      string `json:"Entity Label:" yaml:"label"`
	Text       string `json:"Entity Text" yaml:"text"`
	StartIndex int    `json:"Entity Start Index" yaml:"start_index"`
	EndIndex   int    `json:"Entity End Index" yaml:"end_index"`
}

// EntityTypeMetric holds the evaluation scores of a single entity label.
type EntityTypeMetric struct {
	Precision decimal.Decimal `json:"p" yaml:"precision"`
	Recall    decimal.Decimal `json:"r" yaml:"recall"`
	F1Score   decimal.Decimal `json:"f" yaml:"f1"`
}

// AggregateNerMetrics is the evaluation summary spaCy records for the best
// model of a training session.
type AggregateNerMetrics struct {
	F1Score     decimal.Decimal             `json:"ents_f" yaml:"f1"`
	Precision   decimal.Decimal             `json:"ents_p" yaml:"precision"`
	Recall      decimal.Decimal             `json:"ents_r" yaml:"recall"`
	EntsPerType map[string]EntityTypeMetric `json:"ents_per_type" yaml:"per_type"`
	NerLoss     decimal.Decimal             `json:"ner_loss" yaml:"ner_loss"`
}

// Labels returns the entity labels of EntsPerType in lexical order.
func (m AggregateNerMetrics) Labels() []string {
	labels := make([]string, 0, len(m.EntsPerType))
	for l := range m.EntsPerType {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// TrainingSessionSummary describes a training session and, when it is valid,
// the metrics of its best model.
type TrainingSessionSummary struct {
	TrainingSessionID   uuid.UUID            `json:"training_session_id" yaml:"training_session_id"`
	IsValid             bool                 `json:"is_valid" yaml:"is_valid"`
	InvalidMessage      string               `json:"invalid_message" yaml:"invalid_message,omitempty"`
	NERFields           []string             `json:"ner_fields" yaml:"ner_fields"`
	Performance         *AggregateNerMetrics `json:"performance" yaml:"performance,omitempty"`
	DateCreated         string               `json:"date_created" yaml:"date_created"`
	TrainingDescription string               `json:"training_description" yaml:"training_description"`
}

// DateCreatedLayout is the layout the backend writes DateCreated with.
const DateCreatedLayout = "01/02/2006 15:04:05 PM"

// CreatedAt parses DateCreated in the backend's local-time layout.
func (s TrainingSessionSummary) CreatedAt() (time.Time, error) {
	if s.DateCreated == "" {
		return time.Time{}, errors.New("session has no creation date")
	}
	t, err := time.ParseInLocation(DateCreatedLayout, s.DateCreated, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date_created: %w", err)
	}
	return t, nil
}

// RemoveSessionResult reports whether the backend deleted the session files.
type RemoveSessionResult struct {
	Success bool `json:"success" yaml:"success"`
}

// Decode unmarshals a raw response body into T.
func Decode[T any](raw string) (T, error) {
	var out T
	if strings.TrimSpace(raw) == "" {
		return out, errors.New("empty response body")
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// DecodeModels decodes the body of a list-models call.
func DecodeModels(raw string) ([]ModelInfo, error) {
	return Decode[[]ModelInfo](raw)
}

// DecodeHostedNER decodes the body of a hosted-model NER call.
func DecodeHostedNER(raw string) (HostedNERResult, error) {
	return Decode[HostedNERResult](raw)
}

// DecodeEntities decodes the body of a trained-session NER call.
func DecodeEntities(raw string) ([]EntityDetail, error) {
	return Decode[[]EntityDetail](raw)
}

// DecodeSession decodes the body of a get-session or train call.
func DecodeSession(raw string) (TrainingSessionSummary, error) {
	return Decode[TrainingSessionSummary](raw)
}

// DecodeSessions decodes the body of a list-sessions call.
func DecodeSessions(raw string) ([]TrainingSessionSummary, error) {
	return Decode[[]TrainingSessionSummary](raw)
}

// DecodeRemoveResult decodes the body of a remove-session call.
func DecodeRemoveResult(raw string) (RemoveSessionResult, error) {
	return Decode[RemoveSessionResult](raw)
}

var hundred = decimal.NewFromInt(100)

// Percent formats a 0..1 score as a percentage with two decimals, e.g. "87.50%".
func Percent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(2) + "%"
}
