package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/rchitlangi/cv-site/api/internal/admin/application"
	"github.com/rchitlangi/cv-site/api/internal/config"
	contactapp "github.com/rchitlangi/cv-site/api/internal/contact/application"
	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
	"github.com/rchitlangi/cv-site/api/internal/infrastructure/messenger"
	mongodoc "github.com/rchitlangi/cv-site/api/internal/infrastructure/mongo"
	"github.com/rchitlangi/cv-site/api/internal/infrastructure/recaptcha"
	"github.com/rchitlangi/cv-site/api/internal/infrastructure/smtp"
	adminhttp "github.com/rchitlangi/cv-site/api/internal/interfaces/http/admin"
	commonhttp "github.com/rchitlangi/cv-site/api/internal/interfaces/http/common"
	publichttp "github.com/rchitlangi/cv-site/api/internal/interfaces/http/public"
	"github.com/rchitlangi/cv-site/api/internal/observability"
)

// Server is the composition root: it builds the contact pipeline and its
// adapters, mounts the public and admin handlers and owns the listener lifecycle.
type Server struct {
	logger         zerolog.Logger
	client         *mongo.Client
	eventRepo      *mongodoc.ContactEventRepository
	contacts       contactapp.ContactService
	events         adminapp.ContactEventService
	jwt            jwtSettings
	addr           string
	allowedOrigins []string
	router         chi.Router
}

// New wires every dependency from cfg. client may be nil, which disables the
// audit log and the admin API.
func New(cfg config.Config, logger zerolog.Logger, client *mongo.Client) (*Server, error) {
	sender, err := domain.NewSender(cfg.SMTP.From, cfg.SMTP.Recipient)
	if err != nil {
		return nil, fmt.Errorf("mail sender: %w", err)
	}

	observability.RegisterMetrics()

	srv := &Server{
		logger: logger,
		client: client,
		jwt: jwtSettings{
			secret:   []byte(cfg.Auth.JWTSecret),
			issuer:   strings.TrimSpace(cfg.Auth.JWTIssuer),
			audience: strings.TrimSpace(cfg.Auth.JWTAudience),
		},
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	verifier := recaptcha.New(recaptcha.Config{
		Endpoint: cfg.Captcha.VerifyURL,
		Secret:   cfg.Captcha.Secret,
		Timeout:  cfg.Captcha.Timeout,
	})

	relayCfg := smtp.Config{
		Host:     cfg.SMTP.Host,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Timeout:  cfg.SMTP.Timeout,
	}
	if cfg.SMTP.TLSSkipVerify {
		logger.Warn().Msg("SMTP certificate verification is disabled")
		relayCfg.TLSConfig = &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}
	}
	relay := smtp.NewRelay(relayCfg)

	observers := []contactapp.OutcomeObserver{observability.ContactMetrics{}}
	if client != nil {
		db := client.Database(cfg.Mongo.Database)
		srv.eventRepo = mongodoc.NewContactEventRepository(db, cfg.Mongo.ContactEventCollection)
		srv.events = adminapp.NewContactEventService(srv.eventRepo)
		observers = append(observers, contactapp.NewAuditObserver(srv.eventRepo, logger))
	}
	if cfg.Messenger.Endpoint != "" {
		notifier := messenger.New(messenger.Config{
			Endpoint:    cfg.Messenger.Endpoint,
			Destination: cfg.Messenger.Destination,
			Timeout:     cfg.Messenger.Timeout,
		})
		observers = append(observers, contactapp.NewFailureAlerter(notifier, logger))
	}

	srv.contacts = contactapp.NewPipeline(contactapp.PipelineConfig{
		Verifier:  verifier,
		Relay:     relay,
		Sender:    sender,
		Observers: observers,
		Logger:    logger,
	})

	srv.router = srv.routes(cfg)
	return srv, nil
}

// Handler exposes the assembled router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(cfg config.Config) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(observability.RequestLogger(s.logger))
	router.Use(observability.RequestMetrics)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Handle("/metrics", promhttp.Handler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:      s.logger,
		Contacts:    s.contacts,
		AlignStatus: cfg.AlignHTTPStatus,
		Site: publichttp.SiteInfo{
			Name:           cfg.Site.Name,
			Phone:          cfg.Site.Phone,
			CVLink:         cfg.Site.CVLink,
			CaptchaSiteKey: cfg.Captcha.SiteKey,
		},
		TemplatesDir: cfg.Site.TemplatesDir,
		StaticDir:    cfg.Site.StaticDir,
		WebDir:       cfg.Site.WebDir,
	})
	publicHandler.Register(router)

	if s.events != nil && cfg.AdminEnabled() {
		adminHandler := adminhttp.NewHandler(adminhttp.Config{
			Logger: s.logger,
			Events: s.events,
		})
		router.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			adminHandler.Register(r)
		})
	} else {
		s.logger.Info().Msg("admin API disabled: requires MONGO_URI and AUTH_JWT_SECRET")
	}
	return router
}

// Run starts the HTTP listener and blocks until it stops or a shutdown signal arrives.
func (s *Server) Run() error {
	if s.eventRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.eventRepo.EnsureIndexes(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("contact event indexes could not be ensured")
		}
		cancel()
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP server listening")
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// withCORS returns middleware that adds CORS headers for the allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports infrastructure state only. Without Mongo the service is always ok.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.client == nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
				"status": "ok",
				"mongo":  "disabled",
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"mongo":  "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown disconnects Mongo with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	if s.client == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("MongoDB disconnect failed")
	}
}

// waitForShutdown watches the listener and OS signals and drains in-flight
// requests, including submissions already handed to the relay.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		srv.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error().Err(err).Msg("HTTP server shutdown failed")
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
