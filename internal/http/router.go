package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/http/handlers"
	"github.com/jihan212/BUBT-DX/internal/http/metrics"
	httpmw "github.com/jihan212/BUBT-DX/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	StatsHandler       *handlers.StatsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/jobs":
			r.deps.AuthMiddleware.Identify(http.HandlerFunc(r.deps.JobHandler.List)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/jobs/"):
			r.deps.AuthMiddleware.Identify(http.HandlerFunc(r.deps.JobHandler.Get)).ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodDelete && path == "/api/auth":
		r.deps.AuthHandler.Logout(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/jobs/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/jobs/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/applications":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/users/"):
		r.deps.UserHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/users/"):
		r.deps.UserHandler.Update(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/stats":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.StatsHandler.Overview)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
