package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/codequest-dev/codequest-server/accounts"
	"github.com/codequest-dev/codequest-server/auth"
	"github.com/codequest-dev/codequest-server/internal/config"
	"github.com/codequest-dev/codequest-server/playground"
	"github.com/codequest-dev/codequest-server/users"
	"github.com/pkg/errors"
)

// Repos holds all store dependencies for the Server
type Repos struct {
	Accounts accounts.Repo
	Users    users.Repo
}

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	authority *auth.Authority
	repos     Repos
	runner    *playground.Runner
}

func New(cfg config.Config, authority *auth.Authority, repos Repos, runner *playground.Runner) (*Server, error) {
	if authority == nil {
		return nil, errors.New("[Server New] authority is required")
	}
	if repos.Accounts == nil {
		return nil, errors.New("[Server New] Accounts repo is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[Server New] Users repo is required")
	}
	if runner == nil {
		return nil, errors.New("[Server New] runner is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		authority: authority,
		repos:     repos,
		runner:    runner,
	}
	s.env = cfg.GetEnv()

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

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
