package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// router assembles the inspection server's routes.
func (a *App) router() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/health", a.healthHandler)
	router.Get("/graphs", a.listGraphsHandler)
	router.Get("/graphs/{pipeline}", a.getGraphHandler)
	return router
}

// serve runs the inspection HTTP server in the foreground until the
// context is cancelled, then shuts it down gracefully.
func (a *App) serve(ctx context.Context) error {
	router := a.router()

	addr := fmt.Sprintf(":%d", a.config.ListenPort)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Inspection server starting.", "address", fmt.Sprintf("http://localhost%s/graphs", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down inspection server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Inspection server shutdown failed.", "error", err)
		return err
	}
	return <-errCh
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) listGraphsHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, map[string]any{"pipelines": a.graphs.Names()})
}

func (a *App) getGraphHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "pipeline")
	graph, ok := a.graphs.Get(name)
	if !ok {
		http.Error(w, fmt.Sprintf("no graph for pipeline '%s'", name), http.StatusNotFound)
		return
	}
	a.writeJSON(w, graph)
}

func (a *App) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response.", "error", err)
	}
}
