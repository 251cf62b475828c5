package server

import (
	"log/slog"
	"net/http"
	"time"

	"Conduit/internal/auth"
	"Conduit/internal/calc/conduit"
	"Conduit/internal/calc/premium/batch"
	"Conduit/internal/calc/premium/importer"
	"Conduit/internal/calc/premium/recommend"
	"Conduit/internal/calc/report"
	"Conduit/internal/config"
	"Conduit/internal/history"
	"Conduit/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

// HandleList registers every route on m. The calculators are public; history
// needs a session cookie.
func HandleList(m *mux.Router, cfg *config.Config, store repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, CookieSecure: cfg.CookieSecure}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	conduitH := &conduit.Handler{}
	reportH := &report.Handler{Author: cfg.ReportAuthor}
	recommendH := &recommend.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	historyH := &history.Handler{Repo: store, Reports: reportH}

	m.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		conduit.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := m.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	tools := api.PathPrefix("/tools/conduit").Subrouter()
	tools.HandleFunc("/options", conduitH.Options).Methods("GET")
	tools.HandleFunc("/calc", conduitH.Calc).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/recommend", recommendH.Conduit).Methods("POST")
	tools.HandleFunc("/batch", batchH.Conduit).Methods("POST")
	tools.HandleFunc("/import", importH.Conduit).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/history", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history/{id}", historyH.Get).Methods("GET")
	secureApi.HandleFunc("/history/{id}/pdf", historyH.PDF).Methods("GET")
}

func New(cfg *config.Config, store repo.Repository) http.Handler {
	m := mux.NewRouter()
	HandleList(m, cfg, store)
	return LogRequests(CORS(m))
}
