package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/stafftools/entra-admin/directory"
	"github.com/stafftools/entra-admin/internal/config"
	"github.com/stafftools/entra-admin/session"
)

// Server is the JSON API the admin front end talks to. It owns nothing but
// routing; session state lives in the session manager and every directory
// operation goes through the injected client.
type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	session   *session.Manager
	directory *directory.Client

	// passWebhook is the optional automation path for issuing passes; nil
	// when not configured.
	passWebhook *directory.PassWebhook
}

type ServerOption func(*Server)

// WithPassWebhook enables the alternate webhook path for pass issuance.
func WithPassWebhook(webhook *directory.PassWebhook) ServerOption {
	return func(s *Server) {
		s.passWebhook = webhook
	}
}

func New(cfg config.Config, sessionManager *session.Manager, directoryClient *directory.Client, options ...ServerOption) (*Server, error) {
	if sessionManager == nil {
		return nil, errors.New("[Server New] session manager is required")
	}
	if directoryClient == nil {
		return nil, errors.New("[Server New] directory client is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		session:   sessionManager,
		directory: directoryClient,
	}
	s.env = cfg.GetEnv()

	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
