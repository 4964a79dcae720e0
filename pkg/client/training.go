package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	opListSessions = operation{
		name:    "list_training_sessions",
		failure: "Unable to obtain training sessions.",
		cause:   causeConfig,
	}
	opGetSession = operation{
		name:    "get_training_session",
		failure: "Unable to obtain training session data.",
		cause:   causeConfig,
	}
	opRemoveSession = operation{
		name:    "remove_training_session",
		failure: "Unable to remove the training session.",
		cause:   causeConfig,
	}
	opTrainModel = operation{
		name:    "train_model",
		failure: "Unable to train a new model.",
		cause:   causeConfig,
	}
	opPerformTrainedNER = operation{
		name:    "perform_trained_ner",
		failure: "Unable to perform NER with the training session.",
		cause:   causeConfig,
	}
)

// TrainingFileContentType is the content type of the uploaded training file.
const TrainingFileContentType = "text/csv"

// TrainRequest is the input of TrainModel.
type TrainRequest struct {
	// File streams the CSV training data. It is read exactly once; if it is
	// an io.Closer it is closed when the upload ends.
	File io.Reader
	// FileName is sent as the multipart filename. The backend requires a
	// ".csv" extension.
	FileName string
	// UnstructuredColumn names the CSV column holding the free text; every
	// other column is an entity label.
	UnstructuredColumn string
	// Description is a short note about what the session is for.
	Description string
}

// ListTrainingSessions calls GET /spacy_train_ner/session/.
func (c *ServiceClient) ListTrainingSessions(ctx context.Context) Result {
	return c.do(ctx, request{
		op:      opListSessions,
		method:  http.MethodGet,
		path:    "/spacy_train_ner/session/",
		timeout: c.timeouts.Request,
	})
}

// GetTrainingSession calls GET /spacy_train_ner/session/{id}.
func (c *ServiceClient) GetTrainingSession(ctx context.Context, sessionID string) Result {
	return c.do(ctx, request{
		op:      opGetSession,
		method:  http.MethodGet,
		path:    "/spacy_train_ner/session/" + segment(sessionID),
		timeout: c.timeouts.Request,
	})
}

// RemoveTrainingSession calls DELETE /spacy_train_ner/session/{id}.
func (c *ServiceClient) RemoveTrainingSession(ctx context.Context, sessionID string) Result {
	return c.do(ctx, request{
		op:      opRemoveSession,
		method:  http.MethodDelete,
		path:    "/spacy_train_ner/session/" + segment(sessionID),
		timeout: c.timeouts.Request,
	})
}

// PerformTrainedNER calls POST /spacy_train_ner/perform_ner with a
// URL-encoded form.
func (c *ServiceClient) PerformTrainedNER(ctx context.Context, sessionID, text string) Result {
	form := url.Values{}
	form.Set("text_to_check", text)
	form.Set("training_session_id", sessionID)

	return c.do(ctx, request{
		op:          opPerformTrainedNER,
		method:      http.MethodPost,
		path:        "/spacy_train_ner/perform_ner",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		timeout:     c.timeouts.Request,
	})
}

// TrainModel calls POST /spacy_train_ner/train with a multipart body holding
// the file and the two form fields. Training runs server-side before the
// response is sent, so the call carries no deadline; only ctx can end it
// early. The body is streamed so large files are never held in memory.
func (c *ServiceClient) TrainModel(ctx context.Context, req TrainRequest) Result {
	if req.File == nil {
		return Result{ErrorMessage: opTrainModel.message(errors.New("no training file supplied"))}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	contentType := mw.FormDataContentType()

	go func() {
		err := writeTrainingForm(mw, req)
		if err == nil {
			err = mw.Close()
		}
		if closer, ok := req.File.(io.Closer); ok {
			_ = closer.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	return c.do(ctx, request{
		op:          opTrainModel,
		method:      http.MethodPost,
		path:        "/spacy_train_ner/train",
		body:        pr,
		contentType: contentType,
		timeout:     0,
	})
}

// TrainModelFromFile opens the CSV at path and passes it to TrainModel. A
// missing or empty file is reported in the envelope like any other failure.
func (c *ServiceClient) TrainModelFromFile(ctx context.Context, path, unstructuredColumn, description string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{ErrorMessage: opTrainModel.message(fmt.Errorf("open training file: %w", err))}
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Result{ErrorMessage: opTrainModel.message(fmt.Errorf("stat training file: %w", err))}
	}
	if st.Size() == 0 {
		_ = f.Close()
		return Result{ErrorMessage: opTrainModel.message(errors.New("training file is empty"))}
	}

	return c.TrainModel(ctx, TrainRequest{
		File:               f,
		FileName:           filepath.Base(path),
		UnstructuredColumn: unstructuredColumn,
		Description:        description,
	})
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeTrainingForm(mw *multipart.Writer, req TrainRequest) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(req.FileName)))
	h.Set("Content-Type", TrainingFileContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return fmt.Errorf("copy training file: %w", err)
	}

	if err := mw.WriteField("unstructured_column_name", req.UnstructuredColumn); err != nil {
		return fmt.Errorf("write unstructured_column_name: %w", err)
	}
	if err := mw.WriteField("training_description", req.Description); err != nil {
		return fmt.Errorf("write training_description: %w", err)
	}
	return nil
}
