package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/gitlab"
	apimw "github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/httpapi/middleware"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/notify"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/scheduler"
)

const maxWebhookBody = 1 << 20 // 1 MB

// CycleRunner runs one on-demand health-check cycle.
type CycleRunner interface {
	TriggerNow(ctx context.Context) []domain.ProbeOutcome
}

type Server struct {
	Logger   *zap.Logger
	Ingestor *gitlab.Ingestor
	Notifier notify.Notifier
	Checks   CycleRunner
}

func NewServer(l *zap.Logger, ing *gitlab.Ingestor, nt notify.Notifier, checks CycleRunner) *Server {
	return &Server{Logger: l, Ingestor: ing, Notifier: nt, Checks: checks}
}

func (s *Server) Router(webhookRPM, webhookBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/check-health", s.handleCheckHealth)

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(webhookRPM, webhookBurst))
		r.Post("/webhook/gitlab", s.handleGitLabWebhook)
		r.Post("/webhook/test", s.handleTestWebhook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ci-tg-bot",
	})
}

func (s *Server) handleGitLabWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	token := r.Header.Get("X-Gitlab-Token")
	event := r.Header.Get("X-Gitlab-Event")

	n, err := s.Ingestor.Ingest(token, event, body)
	switch {
	case errors.Is(err, gitlab.ErrUnauthorized):
		s.Logger.Warn("webhook_unauthorized", zap.String("event", event))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	case errors.Is(err, gitlab.ErrMalformedPayload):
		s.Logger.Warn("webhook_malformed", zap.String("event", event), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	case err != nil:
		s.Logger.Error("webhook_ingest_error", zap.String("event", event), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if n == nil {
		s.Logger.Info("webhook_ignored", zap.String("event", event))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	// Delivery is best-effort: GitLab should not retry an accepted event just
	// because the chat channel hiccuped.
	if err := s.Notifier.Send(r.Context(), n.Text, notify.CategoryMerge); err != nil {
		s.Logger.Warn("webhook_notify_failed", zap.String("kind", n.Kind.String()), zap.Error(err))
	} else {
		s.Logger.Info("webhook_notified", zap.String("kind", n.Kind.String()))
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted", "kind": n.Kind.String()})
}

type testPayload struct {
	Message string `json:"message"`
}

func (s *Server) handleTestWebhook(w http.ResponseWriter, r *http.Request) {
	var p testPayload
	// An empty or invalid body falls back to the default message.
	_ = json.NewDecoder(io.LimitReader(r.Body, maxWebhookBody)).Decode(&p)
	if p.Message == "" {
		p.Message = "Test webhook received!"
	}

	text := "🧪 **Test Webhook**\n\n" + p.Message
	if err := s.Notifier.Send(r.Context(), text, notify.CategoryTest); err != nil {
		s.Logger.Warn("test_webhook_notify_failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "notification failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Test notification sent",
	})
}

func (s *Server) handleCheckHealth(w http.ResponseWriter, r *http.Request) {
	outcomes := s.Checks.TriggerNow(r.Context())

	report := scheduler.FormatHealthReport(outcomes)
	if err := s.Notifier.Send(r.Context(), report, notify.CategoryHealthAlert); err != nil {
		s.Logger.Warn("health_report_notify_failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": outcomes,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
