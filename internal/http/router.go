package http

import (
	"net/http"
	"strings"
	"time"

	"internboard/internal/domain/identity"
	"internboard/internal/http/handlers"
	"internboard/internal/http/metrics"
	httpmw "internboard/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	OfferHandler       *handlers.OfferHandler
	ApplicationHandler *handlers.ApplicationHandler
	StudentHandler     *handlers.StudentHandler
	AdminHandler       *handlers.AdminHandler
	MetricsHandler     *handlers.MetricsHandler
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
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/offers") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/students") || strings.HasPrefix(path, "/admin") {
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
	case req.Method == http.MethodGet && path == "/offers":
		r.deps.OfferHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/offers":
		httpmw.RequireRole(identity.RoleCompany)(http.HandlerFunc(r.deps.OfferHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(identity.RoleCompany, identity.RoleAdmin)(http.HandlerFunc(r.deps.OfferHandler.ListApplications)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(identity.RoleCompany, identity.RoleAdmin)(http.HandlerFunc(r.deps.OfferHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/offers/"):
		httpmw.RequireRole(identity.RoleCompany, identity.RoleAdmin)(http.HandlerFunc(r.deps.OfferHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/offers/"):
		httpmw.RequireRole(identity.RoleCompany, identity.RoleAdmin)(http.HandlerFunc(r.deps.OfferHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/offers/"):
		r.deps.OfferHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(identity.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(identity.RoleCompany, identity.RoleAdmin)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		httpmw.RequireRole(identity.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && path == "/students/cv":
		httpmw.RequireRole(identity.RoleStudent)(http.HandlerFunc(r.deps.StudentHandler.SetCV)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/companies":
		httpmw.RequireRole(identity.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.ListCompanies)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/admin/companies/") && strings.HasSuffix(path, "/approval"):
		httpmw.RequireRole(identity.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.SetCompanyApproval)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/stats":
		httpmw.RequireRole(identity.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.Stats)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
