package api

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"weather-widget/widget"
)

// Server represents the widget's HTTP surface
type Server struct {
	widget *widget.Widget
	server *http.Server
	logger *slog.Logger
	page   *template.Template

	// fetches triggered by requests outlive the request; they run under
	// ctx, which is cancelled on Shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type queryRequest struct {
	City string `json:"city"`
}

// NewServer creates a new API server. assetDir is served under /images/.
func NewServer(w *widget.Widget, port int, assetDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		widget: w,
		logger: logger,
		page:   template.Must(template.New("widget").Parse(pageTemplate)),
		ctx:    ctx,
		cancel: cancel,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	// Widget page and background assets
	mux.HandleFunc("/", server.handleIndex)
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(assetDir))))

	// Widget state and triggers
	mux.HandleFunc("/api/view", server.handleView)
	mux.HandleFunc("/api/query", server.handleQuery)
	mux.HandleFunc("/api/fetch", server.handleFetch)

	// Health check
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins the API server
func (s *Server) Start() error {
	s.logger.Info("starting widget server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, cancels background fetches and
// waits for them to return. Handlers still running after ctx expires
// no longer start fetches.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return err
}

// Wait blocks until background fetches started so far have finished
func (s *Server) Wait() {
	s.wg.Wait()
}

// fetchAsync runs a fetch cycle in the background and logs its outcome.
// It reports false once the server is shut down.
func (s *Server) fetchAsync() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		widget.LogFetchError(s.logger, s.widget.Fetch(s.ctx))
	}()
	return true
}

// viewFor renders the widget in the viewer's zone with forecast dates in
// the viewer's locale
func (s *Server) viewFor(r *http.Request) widget.View {
	loc := ViewerLocation(r)
	layout := DateLayoutFor(r.Header.Get("Accept-Language"))
	return s.widget.ViewIn(loc).WithDateLayout(layout, loc)
}

// handleIndex serves the widget page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, s.viewFor(r)); err != nil {
		s.logger.Error("render widget page", "err", err)
	}
}

// handleView returns the current widget view
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.viewFor(r))
}

// handleQuery replaces the city query. Previous results are cleared
// before the response is written; the fetch for a non-blank city runs
// in the background.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if s.widget.SetQuery(req.City) && !s.fetchAsync() {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, s.viewFor(r))
}

// handleFetch re-runs the fetch for the current query
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// a blank query fails validation without touching the provider;
	// answer synchronously so the page can show the prompt
	if strings.TrimSpace(s.widget.Query()) == "" {
		widget.LogFetchError(s.logger, s.widget.Fetch(s.ctx))
		writeJSON(w, http.StatusUnprocessableEntity, s.viewFor(r))
		return
	}

	if !s.fetchAsync() {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, s.viewFor(r))
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"clock":     s.widget.Active(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
