package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"visualmind/config"
	"visualmind/diagram"
	"visualmind/export"
	"visualmind/generator"
)

const (
	serviceName = "VisualMind AI"
	// isoMillis matches JavaScript's Date.toISOString.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
	// maxBodyBytes caps every JSON request body.
	maxBodyBytes = 1 << 20
)

type Server struct {
	genAgent *generator.Agent
	cfg      config.Config
	logger   *zap.Logger
	static   http.Handler
}

func New(genAgent *generator.Agent, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if genAgent == nil {
		return nil, errors.New("generator agent required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		genAgent: genAgent,
		cfg:      cfg,
		logger:   logger,
	}
	if cfg.Production() {
		s.static = http.FileServer(http.Dir(cfg.StaticDir))
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/normalize", s.handleNormalize)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.Handle("/", s.staticHandler())
	return logMiddleware(s.logger, corsMiddleware(s.cfg.AllowedOrigin, mux))
}

// staticHandler serves the built frontend in production, falling back to
// index.html for client-side routes.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.static == nil || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		p := path.Clean("/" + r.URL.Path)
		if p != "/" {
			if _, err := os.Stat(filepath.Join(s.cfg.StaticDir, filepath.FromSlash(p))); err != nil {
				r.URL.Path = "/"
			}
		}
		s.static.ServeHTTP(w, r)
	})
}

// --- Handlers ---

type generateReq struct {
	Topic string `json:"topic"`
}

type generateResp struct {
	Raw       string             `json:"raw"`
	Mermaid   string             `json:"mermaid"`
	Topic     string             `json:"topic"`
	Category  generator.Category `json:"category"`
	Timestamp string             `json:"timestamp"`
}

type healthResp struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model"`
	Service   string `json:"service"`
}

type normalizeReq struct {
	Mermaid string `json:"mermaid"`
}

type normalizeResp struct {
	Mermaid string `json:"mermaid"`
}

type exportReq struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Mermaid  string `json:"mermaid"`
	Raw      string `json:"raw"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateReq
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.genAgent.Generate(r.Context(), req.Topic)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Raw:       res.Raw,
		Mermaid:   res.Mermaid,
		Topic:     res.Topic,
		Category:  res.Category,
		Timestamp: res.Timestamp.UTC().Format(isoMillis),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResp{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(isoMillis),
		Model:     s.cfg.LLM.Model,
		Service:   serviceName,
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req normalizeReq
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, normalizeResp{Mermaid: diagram.Normalize(req.Mermaid)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req exportReq
	if !decodeBody(w, r, &req) {
		return
	}
	page, err := export.HTML(export.Document{
		Topic:     req.Topic,
		Category:  req.Category,
		Mermaid:   req.Mermaid,
		Raw:       req.Raw,
		Timestamp: time.Now(),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(req.Topic)+`"`)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write([]byte(page))
}

// --- Helpers ---

// decodeBody reads a size-limited JSON body into v and writes the error
// response itself when that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

var reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// exportFilename mirrors the download name the frontend uses for exports.
func exportFilename(topic string) string {
	name := strings.Trim(reUnsafeFilename.ReplaceAllString(strings.TrimSpace(topic), "_"), "_")
	if name == "" {
		name = "neural_diagram"
	}
	return name + ".html"
}

func statusFor(err error) int {
	var ie *generator.InputError
	if errors.As(err, &ie) {
		return http.StatusBadRequest
	}
	var ue *generator.UpstreamError
	if errors.As(err, &ue) && ue.Timeout() {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}
