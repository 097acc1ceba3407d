package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/api"
	"github.com/adfharrison1/go-bloodbank/pkg/domain"
	"github.com/adfharrison1/go-bloodbank/pkg/records"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop signal.
const ShutdownTimeout = 30 * time.Second

// Server holds references to storage, router, etc.
type Server struct {
	router *mux.Router
	store  domain.DocumentStore
	log    logrus.FieldLogger
}

// NewServer creates a new instance of Server over an open document store.
// The server owns the store and closes it when Run returns.
func NewServer(store domain.DocumentStore, log logrus.FieldLogger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		log:    log,
	}

	handler := api.NewHandler(records.NewStore(store, log), log)
	handler.RegisterRoutes(s.router)

	return s
}

// Router exposes the HTTP handler, request logging included.
func (s *Server) Router() http.Handler {
	return api.RequestLogger(s.log)(s.router)
}

// Run serves on addr until ctx is cancelled, then drains requests and closes
// the store.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.closeStore()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer s.closeStore()

	httpServer := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", listener.Addr().String()).Info("Starting bloodbank server")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.log.Info("Server exited")
	return nil
}

func (s *Server) closeStore() {
	if err := s.store.Close(); err != nil {
		s.log.WithError(err).Error("Could not close document store")
		return
	}
	s.log.Info("Document store closed")
}
