// Package model defines the records returned by the EntiTrack backend.
//
// The service client never decodes response bodies; it hands the raw text
// back in its result envelope. Callers decode that text with the helpers in
// this package:
//
//	res := svc.ListModels(ctx, apiKey)
//	if !res.Succeeded {
//		return errors.New(res.ErrorMessage)
//	}
//	models, err := model.DecodeModels(res.RawBody)
//
// # Records
//
//   - ModelInfo: a generative model offered by the hosted provider
//   - HostedNERResult: field → extracted value from a hosted-model NER call
//   - EntityDetail: a labelled span found by a trained session model
//   - TrainingSessionSummary: a training session and its metrics
//   - AggregateNerMetrics / EntityTypeMetric: spaCy evaluation scores
//   - RemoveSessionResult: outcome of a session removal
//
// Scores are decimal.Decimal values so they round predictably for display;
// Percent formats them as percentages.
//
// All records are plain values with no behavior beyond small display helpers.
package model
