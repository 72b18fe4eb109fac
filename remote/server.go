package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qbench"
)

const maxRequestBytes = 8 << 20

// Server exposes a simulator over HTTP.
type Server struct {
	sim    qbench.Simulator
	router chi.Router
}

func NewServer(sim qbench.Simulator) *Server {
	server := &Server{sim: sim, router: chi.NewRouter()}
	server.RegisterRoutes(server.router)
	return server
}

// RegisterRoutes registers the simulator endpoints on r.
func (server *Server) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.handleHealth)
	r.Post("/simulate", server.handleSimulate)
}

func (server *Server) Handler() http.Handler {
	return server.router
}

/*
ListenAndServe serves on addr until ctx is done, then shuts down, giving
in-flight simulations a few seconds to finish.
*/
func (server *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errnie.Info("remote simulator listening on %s", addr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (server *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (server *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeMessage[SimulateRequest](http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, &SimulateResponse{Error: "malformed request: " + err.Error()})
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	circuit, err := req.circuit()
	if err != nil {
		writeResponse(w, http.StatusBadRequest, &SimulateResponse{ID: req.ID, Error: err.Error()})
		return
	}

	ctx := r.Context()
	if req.Stream != nil {
		ctx = qbench.WithStream(ctx, *req.Stream)
	}

	// A nil *NoiseModel must reach the simulator as a nil interface.
	var noise qbench.NoiseModel
	if req.Noise != nil {
		noise = req.Noise
	}

	counts, err := server.sim.Simulate(ctx, circuit, noise, req.Shots)
	if err != nil {
		errnie.Info("simulation %s failed: %v", req.ID, err)
		writeResponse(w, http.StatusUnprocessableEntity, &SimulateResponse{ID: req.ID, Error: err.Error()})
		return
	}

	writeResponse(w, http.StatusOK, &SimulateResponse{ID: req.ID, Counts: counts})
}

func writeResponse(w http.ResponseWriter, status int, resp *SimulateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
