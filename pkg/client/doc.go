// Package client provides the EntiTrack service client.
//
// ServiceClient has one method per backend operation. Each method performs a
// single HTTP round trip against the base endpoint reported by the state
// store and returns a Result envelope. No method returns an error: transport
// failures and non-2xx statuses both end up in Result.ErrorMessage, worded
// for direct display.
//
// # Operations
//
//	ListModels             GET    /gen_ai_ner/list_models_google_studio/{apiKey}
//	PerformNER             POST   /gen_ai_ner/perform_ner/{apiKey}         (JSON)
//	ListTrainingSessions   GET    /spacy_train_ner/session/
//	GetTrainingSession     GET    /spacy_train_ner/session/{id}
//	RemoveTrainingSession  DELETE /spacy_train_ner/session/{id}
//	TrainModel             POST   /spacy_train_ner/train                   (multipart)
//	PerformTrainedNER      POST   /spacy_train_ner/perform_ner             (form)
//
// ListModels and PerformNER remember the supplied API key in the state store
// when the call succeeds, so a key proven to work is available to later
// calls. A failed call leaves the stored key untouched.
//
// # Usage Example
//
//	res := svc.PerformTrainedNER(ctx, sessionID, "221 B Baker Street London")
//	if !res.Succeeded {
//		fmt.Println(res.ErrorMessage)
//		return
//	}
//	entities, err := model.DecodeEntities(res.RawBody)
//
// The client only reads error bodies for the backend's message; decoding
// RawBody is the caller's job (see package model).
//
// # Timeouts
//
// Every call except TrainModel is bounded by config.Timeouts.Request.
// Training runs on the backend before it answers and may take arbitrarily
// long, so TrainModel has no deadline. The caller's context still applies.
//
// # Retries
//
// None. Each method makes exactly one attempt.
package client
