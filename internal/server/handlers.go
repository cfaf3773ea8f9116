package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"svgrad/grad"
)

// applyRequest is the JSON body for /apply. Either Instruction or Spec must
// be present; an explicit Spec bypasses both the model and the parser.
type applyRequest struct {
	SVG         string              `json:"svg"`
	Instruction string              `json:"instruction"`
	Spec        *grad.Specification `json:"spec,omitempty"`
}

type applyResponse struct {
	SVG    string   `json:"svg"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
	Steps  int      `json:"steps"`
	Notes  []string `json:"notes,omitempty"`
	Source string   `json:"source"`
}

type validateRequest struct {
	SVG string `json:"svg"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		svg := r.FormValue("svg")
		instruction := r.FormValue("instruction")
		if strings.TrimSpace(svg) == "" {
			http.Error(w, "missing svg", http.StatusBadRequest)
			return
		}
		out := s.runPipeline(r.Context(), svg, instruction, nil)
		for _, e := range out.Errors {
			s.logger.Printf("CHECK %s", e)
		}
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		io.WriteString(w, out.SVG)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(s.cfg.IndexHTML)))
	io.WriteString(w, s.cfg.IndexHTML)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SVG) == "" {
		http.Error(w, "missing svg", http.StatusBadRequest)
		return
	}
	if req.Spec == nil && strings.TrimSpace(req.Instruction) == "" {
		http.Error(w, "missing instruction or spec", http.StatusBadRequest)
		return
	}
	if req.Spec != nil {
		// A directly submitted specification must conform exactly; unlike
		// instruction text there is no default to degrade to.
		if err := req.Spec.Check(); err != nil {
			http.Error(w, "invalid spec: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	out := s.runPipeline(r.Context(), req.SVG, req.Instruction, req.Spec)
	writeJSON(w, out)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, grad.Validate(req.SVG))
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "pong")
}

// runPipeline resolves a Specification (explicit > model > parser), applies
// it, and validates the result. Validation is advisory: the patched document
// is returned either way, with the report alongside.
func (s *Server) runPipeline(ctx context.Context, svg, instruction string, spec *grad.Specification) applyResponse {
	var (
		resolved grad.Specification
		notes    []string
		source   string
	)
	switch {
	case spec != nil:
		resolved = *spec
		source = "spec"
	case s.cfg.Producer != nil:
		if produced, err := s.cfg.Producer(ctx, instruction); err == nil {
			resolved = produced
			source = "model"
		} else {
			s.logger.Printf("PARSE model producer unavailable (%v), using deterministic parser", err)
		}
	}
	if source == "" {
		res := grad.Parse(instruction)
		resolved = res.Spec
		notes = res.Notes
		source = "parser"
	}
	s.logger.Printf("PARSE source=%s steps=%d", source, len(resolved.Steps))

	patched := grad.Apply(svg, resolved)
	report := grad.Validate(patched)
	s.logger.Printf("PATCH steps=%d valid=%v", len(resolved.Steps), report.Valid)

	return applyResponse{
		SVG:    patched,
		Valid:  report.Valid,
		Errors: report.Errors,
		Steps:  len(resolved.Steps),
		Notes:  notes,
		Source: source,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
