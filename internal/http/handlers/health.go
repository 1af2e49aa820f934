package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/tree"
)

// HealthCheckHandler answers OK! when the backing store can be read.
func HealthCheckHandler(store tree.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := store.Get(ctx, "proximoId"); err != nil {
			log.Error("Health check failed to read the store", "error", err)
			RespondMessage(w, http.StatusServiceUnavailable, "Armazenamento indisponível")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// NotFoundHandler answers every unknown route with the JSON envelope.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondMessage(w, http.StatusNotFound, "Rota não encontrada")
	}
}
