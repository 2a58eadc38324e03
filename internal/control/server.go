package control

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/session"
	"github.com/cwbudde/algo-stretch/internal/host"
)

// Server exposes the pedal's footswitches and status over HTTP.
type Server struct {
	instance string
	sess     *session.Session
	surface  *host.SoftwareSurface
	gatherer prometheus.Gatherer
	log      *zap.Logger
	router   chi.Router
}

// Status is the body of GET /v1/status.
type Status struct {
	Instance        string  `json:"instance"`
	State           string  `json:"state"`
	Generation      uint64  `json:"generation"`
	Stretch         float64 `json:"stretch"`
	StretchControl  float64 `json:"stretchControl"`
	Recorded        int     `json:"recorded"`
	RecordingCap    int     `json:"recordingCap"`
	Stretched       int     `json:"stretched"`
	StretchedCap    int     `json:"stretchedCap"`
	ReadCursor      int     `json:"readCursor"`
	Blocks          uint64  `json:"blocks"`
	Stalls          uint64  `json:"stalls"`
	Dropped         uint64  `json:"dropped"`
	Bypass          bool    `json:"bypass"`
	RecordIndicator float32 `json:"recordIndicator"`
}

type stretchRequest struct {
	Factor float64 `json:"factor"`
}

// New builds the router. gatherer may be nil to disable /metrics.
func New(sess *session.Session, surface *host.SoftwareSurface, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		instance: uuid.New().String(),
		sess:     sess,
		surface:  surface,
		gatherer: gatherer,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.status)
		r.Post("/record", s.pressRecord)
		r.Post("/bypass", s.pressBypass)
		r.Put("/stretch", s.setStretch)
	})

	s.router = r
	return s
}

// Instance returns the random ID of this server instance.
func (s *Server) Instance() string { return s.instance }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("control API listening", zap.String("addr", addr), zap.String("instance", s.instance))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st := s.sess.Stats()
	writeJSON(w, http.StatusOK, Status{
		Instance:        s.instance,
		State:           st.State.String(),
		Generation:      st.Generation,
		Stretch:         st.Stretch,
		StretchControl:  s.surface.StretchControl(),
		Recorded:        st.FillLen,
		RecordingCap:    s.sess.RecordingCap(),
		Stretched:       st.WriteLen,
		StretchedCap:    s.sess.StretchedCap(),
		ReadCursor:      st.ReadCursor,
		Blocks:          st.Blocks,
		Stalls:          st.Stalls,
		Dropped:         st.Dropped,
		Bypass:          s.surface.Bypassed(),
		RecordIndicator: s.surface.Indicator(host.IndicatorRecord),
	})
}

func (s *Server) pressRecord(w http.ResponseWriter, r *http.Request) {
	s.surface.PressRecord()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) pressBypass(w http.ResponseWriter, r *http.Request) {
	s.surface.PressBypass()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) setStretch(w http.ResponseWriter, r *http.Request) {
	var req stretchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := core.ValidateStretch(req.Factor); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.surface.SetStretchControl(req.Factor)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("requestId", chimw.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
