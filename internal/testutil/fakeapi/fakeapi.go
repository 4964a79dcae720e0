// Package fakeapi runs an in-process stand-in for the EntiTrack backend. It
// routes the seven backend endpoints, records every request and answers with
// canned responses that tests can override per route.
package fakeapi

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Route identifiers accepted by Respond and Delay.
const (
	ListModels     = "list_models"
	PerformNER     = "perform_ner"
	ListSessions   = "list_sessions"
	GetSession     = "get_session"
	RemoveSession  = "remove_session"
	Train          = "train"
	PerformSession = "perform_session_ner"
)

// Response is a canned answer.
type Response struct {
	Status int
	Body   string
}

// Captured is a request as the server saw it. Multipart and URL-encoded
// bodies are parsed into Form and Files.
type Captured struct {
	Route       string
	Method      string
	Path        string
	Params      map[string]string
	Header      http.Header
	Body        string
	Form        map[string]string
	Files       map[string]File
	ContentType string
}

// File is one uploaded multipart file.
type File struct {
	Name        string
	ContentType string
	Content     string
}

// Server is a fake backend listening on a loopback address.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	delays    map[string]time.Duration
	requests  []Captured
}

// New starts a fake backend with default 200 responses for every route.
// The caller must Close it.
func New() *Server {
	s := &Server{
		responses: map[string]Response{
			ListModels:     {Status: http.StatusOK, Body: `[{"name":"models/gemini-2.0-flash","display_name":"Gemini 2.0 Flash","description":"","input_token_limit":"1048576","output_token_limit":"8192"}]`},
			PerformNER:     {Status: http.StatusOK, Body: `{"CITY":"London"}`},
			ListSessions:   {Status: http.StatusOK, Body: `[]`},
			GetSession:     {Status: http.StatusOK, Body: `{"training_session_id":"6f1c2a9e-3b7d-4c55-9a10-2f4e8b7d1c03","is_valid":true}`},
			RemoveSession:  {Status: http.StatusOK, Body: `{"success": true}`},
			Train:          {Status: http.StatusOK, Body: `{"training_session_id":"6f1c2a9e-3b7d-4c55-9a10-2f4e8b7d1c03","is_valid":true}`},
			PerformSession: {Status: http.StatusOK, Body: `[]`},
		},
		delays: make(map[string]time.Duration),
	}

	r := chi.NewRouter()
	r.Route("/gen_ai_ner", func(r chi.Router) {
		r.Get("/list_models_google_studio/{apiKey}", s.handle(ListModels))
		r.Post("/perform_ner/{apiKey}", s.handle(PerformNER))
	})
	r.Route("/spacy_train_ner", func(r chi.Router) {
		r.Get("/session/", s.handle(ListSessions))
		r.Get("/session/{sessionID}", s.handle(GetSession))
		r.Delete("/session/{sessionID}", s.handle(RemoveSession))
		r.Post("/train", s.handle(Train))
		r.Post("/perform_ner", s.handle(PerformSession))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Respond overrides the answer of a route.
func (s *Server) Respond(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[route] = Response{Status: status, Body: body}
}

// Delay makes a route wait d before answering.
func (s *Server) Delay(route string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[route] = d
}

// Requests returns a copy of every captured request in arrival order.
func (s *Server) Requests() []Captured {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Captured, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent captured request, or false if none arrived.
func (s *Server) Last() (Captured, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Captured{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handle(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := capture(route, r)

		s.mu.Lock()
		s.requests = append(s.requests, c)
		resp := s.responses[route]
		delay := s.delays[route]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, resp.Body)
	}
}

func capture(route string, r *http.Request) Captured {
	c := Captured{
		Route:       route,
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		Params:      make(map[string]string),
		Header:      r.Header.Clone(),
		Form:        make(map[string]string),
		Files:       make(map[string]File),
		ContentType: r.Header.Get("Content-Type"),
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			c.Params[k] = rctx.URLParams.Values[i]
		}
	}

	mediaType, params, _ := mime.ParseMediaType(c.ContentType)
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(p)
			if p.FileName() != "" {
				c.Files[p.FormName()] = File{
					Name:        p.FileName(),
					ContentType: p.Header.Get("Content-Type"),
					Content:     string(data),
				}
			} else {
				c.Form[p.FormName()] = string(data)
			}
		}
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err == nil {
			for k := range r.PostForm {
				c.Form[k] = r.PostForm.Get(k)
			}
		}
	default:
		data, _ := io.ReadAll(r.Body)
		c.Body = string(data)
	}
	return c
}
