package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/matchups"
)

func ListMatchupsHandler(store matchups.MatchupStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func CreateMatchupHandler(store matchups.MatchupStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		matchup, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, matchup)
	}
}

func ListRoundHandler(store matchups.MatchupStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := store.ListRound(r.Context(), r.PathValue("rodada"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, round)
	}
}

// ReplaceRoundHandler takes the full list of matchups for the round.
func ReplaceRoundHandler(store matchups.MatchupStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := decodeObjects(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		round, err := store.ReplaceRound(r.Context(), r.PathValue("rodada"), items)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, round)
	}
}

func DeleteMatchupHandler(store matchups.MatchupStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("id")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Confronto removido com sucesso")
	}
}
