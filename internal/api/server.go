package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"roomly/internal/booking"
	"roomly/internal/config"
)

// HTTPServer is the transport adapter in front of the booking service.
type HTTPServer struct {
	cfg    config.ServerConfig
	svc    *booking.Service
	server *http.Server
	logger *zerolog.Logger
}

func NewHTTPServer(cfg config.ServerConfig, rl config.RateLimitConfig, svc *booking.Service, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{cfg: cfg, svc: svc, logger: logger}

	mux.HandleFunc("/create-room", srv.handleCreateRoom)
	mux.HandleFunc("/book-room", srv.handleBookRoom)
	mux.HandleFunc("/list-rooms", srv.handleListRooms)
	mux.HandleFunc("/list-rooms-with-id", srv.handleListRoomsWithID)
	mux.HandleFunc("/list-customers", srv.handleListCustomers)
	mux.HandleFunc("/customer-booking-count/", srv.handleCustomerBookingCount)
	mux.HandleFunc("/export/bookings", srv.handleExportBookings)
	mux.HandleFunc("/healthz", srv.handleHealth)

	limiter := newRateLimiter(rl)
	handler := srv.loggingMiddleware(limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
