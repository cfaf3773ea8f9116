// Package server exposes the gradient pipeline over HTTP: an index form for
// hand testing, a JSON apply endpoint, and a standalone validate endpoint.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"svgrad/grad"
	"svgrad/internal/llm"
)

const defaultIndexHTML = `<!DOCTYPE html>
<html><body>
<h1>svgrad</h1>
<form action="/" method="post">
<h3>Apply a gradient instruction to an SVG document</h3>
<textarea name="svg" rows="8" cols="80">&lt;svg width="300" height="300" xmlns="http://www.w3.org/2000/svg"&gt;
  &lt;rect id="hero" x="50" y="50" width="200" height="100" fill="red"/&gt;
  &lt;circle cx="150" cy="200" r="40" fill="green"/&gt;
  &lt;rect x="20" y="20" width="50" height="50" fill="blue" class="small-box"/&gt;
&lt;/svg&gt;</textarea><br>
Instruction: <input name="instruction" size="80" value="give the element with id 'hero' a radial gradient from red to white"><br>
<button type="submit">Apply</button>
</form>
</body></html>`

// SpecProducer is an optional upstream source of Specifications, typically a
// model-backed parser. Any error means "no specification available" and the
// deterministic parser runs instead.
type SpecProducer func(ctx context.Context, instruction string) (grad.Specification, error)

// Config describes server wiring.
type Config struct {
	IndexHTML string
	Logger    *log.Logger
	Producer  SpecProducer
}

// DefaultConfig populates configuration from environment variables. Setting
// SVGRAD_API_KEY enables the model-backed producer; SVGRAD_MODEL and
// SVGRAD_API_URL tune it.
func DefaultConfig() Config {
	cfg := Config{
		IndexHTML: defaultIndexHTML,
		Logger:    log.Default(),
	}
	if key := strings.TrimSpace(os.Getenv("SVGRAD_API_KEY")); key != "" {
		client := llm.NewClient(key, os.Getenv("SVGRAD_MODEL"), os.Getenv("SVGRAD_API_URL"))
		cfg.Producer = func(ctx context.Context, instruction string) (grad.Specification, error) {
			return llm.ProduceSpecification(ctx, client, instruction)
		}
	}
	return cfg
}

// Server exposes the HTTP handlers around the pipeline.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	handler http.Handler
	logger  *log.Logger
}

// New wires a server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.IndexHTML == "" {
		cfg.IndexHTML = defaultIndexHTML
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: cfg.Logger,
	}
	s.registerRoutes()
	s.handler = withLogging(s.logger, s.mux)
	return s
}

// NewServer wires a server from the environment.
func NewServer() http.Handler {
	return New(DefaultConfig())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/apply", s.handleApply)
	s.mux.HandleFunc("/validate", s.handleValidate)
	s.mux.HandleFunc("/ping", s.handlePing)
}
