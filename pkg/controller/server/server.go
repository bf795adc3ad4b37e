package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"sync"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/utils/errutil"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

// WebhookTokenHeader carries the shared token of the Crowdin webhook.
const WebhookTokenHeader = "X-L10nsync-Token"

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

type config struct {
	token          types.WebhookToken
	metricsHandler http.Handler
}

type Option func(*config)

// WithWebhookToken requires the token in the X-L10nsync-Token header of
// webhook requests. Without it, any request triggers a sync.
func WithWebhookToken(token types.WebhookToken) Option {
	return func(cfg *config) {
		cfg.token = token
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(cfg *config) {
		cfg.metricsHandler = h
	}
}

// New builds the router. Every accepted webhook runs a sync with input.
func New(uc interfaces.UseCase, input *model.SyncInput, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	// Held while a sync runs in the background
	var running sync.Mutex

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	if cfg.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metricsHandler)
	}
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/crowdin", func(w http.ResponseWriter, r *http.Request) {
			if !validToken(r, cfg.token) {
				logging.From(r.Context()).Warn("reject webhook with invalid token")
				safeWrite(w, http.StatusUnauthorized, []byte(`{"status":"error","message":"invalid token"}`))
				return
			}

			if !running.TryLock() {
				safeWrite(w, http.StatusConflict, []byte(`{"status":"busy","message":"sync is already running"}`))
				return
			}

			runID, bgCtx := DetachContext(r.Context())

			go func() {
				defer running.Unlock()
				runSync(bgCtx, uc, input)
			}()

			logging.From(bgCtx).Info("sync accepted")
			safeWrite(w, http.StatusAccepted, []byte(fmt.Sprintf(`{"status":"accepted","run_id":%q}`, runID.String())))
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

func validToken(r *http.Request, token types.WebhookToken) bool {
	if token == "" {
		return true
	}
	given := r.Header.Get(WebhookTokenHeader)
	return subtle.ConstantTimeCompare([]byte(given), []byte(token)) == 1
}

// runSync is called from a background goroutine.
func runSync(ctx context.Context, uc interfaces.UseCase, input *model.SyncInput) {
	logger := logging.From(ctx)
	logger.Info("Starting translation sync")

	result, err := uc.SyncTranslations(ctx, input)
	if err != nil {
		errutil.HandleError(ctx, "Background sync failed", err)
		return
	}
	logger.Info("Translation sync completed", slog.Any("entries", result.Entries), slog.Any("skipped", result.Skipped))
}
