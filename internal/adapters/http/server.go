// Package httpadapter exposes the humanization core over JSON HTTP. Request
// bodies are explicit schemas validated at the boundary before anything
// reaches the core services.
package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"humanizepro/internal/auth"
	"humanizepro/internal/diff"
	"humanizepro/internal/domain"
	"humanizepro/internal/ports"
	"humanizepro/internal/rewrite"
	projsvc "humanizepro/internal/services/projects"
	"humanizepro/pkg/logger"
)

type Server struct {
	humanizer ports.Humanizer
	checker   ports.DetectionChecker
	projects  *projsvc.Service
	auth      *auth.Service
	log       *logger.Logger
}

func New(humanizer ports.Humanizer, checker ports.DetectionChecker, projects *projsvc.Service, authSvc *auth.Service, log *logger.Logger) *Server {
	return &Server{humanizer: humanizer, checker: checker, projects: projects, auth: authSvc, log: log}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/humanize", s.handleHumanize)
	r.Post("/humanize/check", s.handleCheck)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)
		r.Get("/current", s.handleCurrentProject)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Put("/", s.handleUpdateProject)
			r.Delete("/", s.handleDeleteProject)
			r.Post("/select", s.handleSelectProject)
		})
	})

	r.Post("/auth/send-otp", s.handleSendOTP)
	r.Post("/auth/verify-otp", s.handleVerifyOTP)
	return r
}

// --- humanize ---

type humanizeRequest struct {
	Text      string        `json:"text"`
	Tone      string        `json:"tone"`
	Intensity int           `json:"intensity"`
	Language  string        `json:"language"`
	Flags     *domain.Flags `json:"flags"`
	ProjectID string        `json:"projectId"`
}

type humanizeResponse struct {
	OutputText string                  `json:"outputText"`
	VersionID  string                  `json:"versionId"`
	Timestamp  time.Time               `json:"timestamp"`
	Metadata   *domain.RewriteMetadata `json:"metadata,omitempty"`
	Diff       []diff.Segment          `json:"diff,omitempty"`
}

func (s *Server) handleHumanize(w http.ResponseWriter, r *http.Request) {
	var req humanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	flags := domain.DefaultFlags()
	if req.Flags != nil {
		flags = *req.Flags
	}

	result, err := s.humanizer.Humanize(r.Context(), domain.HumanizeRequest{
		Text:      req.Text,
		Tone:      domain.ParseTone(req.Tone),
		Intensity: req.Intensity,
		Language:  req.Language,
		Flags:     flags,
	})
	if err != nil {
		s.writeRewriteError(w, err)
		return
	}

	if req.ProjectID != "" {
		if _, err := s.projects.AddVersion(r.Context(), req.ProjectID, result); err != nil {
			s.writeProjectError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, humanizeResponse{
		OutputText: result.OutputText,
		VersionID:  result.VersionID,
		Timestamp:  result.CreatedAt,
		Metadata:   result.Metadata,
		Diff:       diff.Compare(req.Text, result.OutputText),
	})
}

type checkRequest struct {
	Text      string `json:"text"`
	ProjectID string `json:"projectId"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	report := s.checker.Check(req.Text)
	if req.ProjectID != "" {
		if _, err := s.projects.AttachScores(r.Context(), req.ProjectID, report.Scores); err != nil {
			s.writeProjectError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, report)
}

// --- projects ---

type createProjectRequest struct {
	Title     string        `json:"title"`
	InputText string        `json:"inputText"`
	Language  string        `json:"language"`
	Tone      string        `json:"tone"`
	Intensity int           `json:"intensity"`
	Flags     *domain.Flags `json:"flags"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	seed := domain.Project{
		Title:     req.Title,
		InputText: req.InputText,
		Language:  req.Language,
		Tone:      domain.ParseTone(req.Tone),
		Intensity: req.Intensity,
	}
	if req.Flags != nil {
		seed.Flags = *req.Flags
	}
	p, err := s.projects.Create(r.Context(), seed)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not create project")
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.projects.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not list projects")
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeProjectError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

type updateProjectRequest struct {
	Title      *string       `json:"title"`
	InputText  *string       `json:"inputText"`
	OutputText *string       `json:"outputText"`
	Language   *string       `json:"language"`
	Tone       *string       `json:"tone"`
	Intensity  *int          `json:"intensity"`
	Flags      *domain.Flags `json:"flags"`
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	patch := projsvc.Patch{
		Title:      req.Title,
		InputText:  req.InputText,
		OutputText: req.OutputText,
		Language:   req.Language,
		Intensity:  req.Intensity,
		Flags:      req.Flags,
	}
	if req.Tone != nil {
		tone := domain.ParseTone(*req.Tone)
		patch.Tone = &tone
	}
	p, err := s.projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeProjectError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeProjectError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.SetCurrent(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeProjectError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentProject(w http.ResponseWriter, r *http.Request) {
	p, ok, err := s.projects.Current(r.Context())
	if err != nil {
		s.writeProjectError(w, err)
		return
	}
	if !ok {
		s.writeError(w, http.StatusNotFound, "no project selected")
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// --- auth ---

type sendOTPRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	code, err := s.auth.SendOTP(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidEmail) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "could not issue a code")
		return
	}
	// Dev mode: the code is returned instead of mailed.
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "code sent",
		"devCode": code,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	token, err := s.auth.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, auth.ErrCodeInvalid) || errors.Is(err, auth.ErrCodeExpired) {
			s.writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "could not verify the code")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// --- shared ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeRewriteError maps the rewrite error taxonomy to HTTP statuses. Every
// kind keeps its stable user-facing message.
func (s *Server) writeRewriteError(w http.ResponseWriter, err error) {
	var rerr *rewrite.Error
	if !errors.As(err, &rerr) {
		s.log.Error("humanize failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	s.log.Warn("humanize failed", "detail", rerr.Detail())
	switch rerr.Kind {
	case rewrite.KindInvalidInput:
		s.writeError(w, http.StatusBadRequest, rerr.Error())
	case rewrite.KindRateLimited:
		s.writeError(w, http.StatusTooManyRequests, rerr.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, rerr.Error())
	}
}

func (s *Server) writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projsvc.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, projsvc.ErrNoVersions):
		s.writeError(w, http.StatusConflict, "the project has no versions to attach scores to")
	case errors.Is(err, projsvc.ErrScoresAttached):
		s.writeError(w, http.StatusConflict, "scores are already attached to the latest version")
	default:
		s.log.Error("project operation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
