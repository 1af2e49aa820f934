package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/tournaments"
)

func ListTournamentsHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func GetTournamentHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournament, err := store.Get(r.Context(), r.PathValue("torneioId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, tournament)
	}
}

func CreateTournamentHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		tournament, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, tournament)
	}
}

func UpdateTournamentHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		tournament, err := store.Update(r.Context(), r.PathValue("torneioId"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, tournament)
	}
}

func DeleteTournamentHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("torneioId")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Torneio removido com sucesso")
	}
}

func ListTournamentPlayersHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListPlayers(r.Context(), r.PathValue("torneioId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func AddTournamentPlayerHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		player, err := store.AddPlayer(r.Context(), r.PathValue("torneioId"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, player)
	}
}

// ReplaceTournamentPlayersHandler takes the whole player list.
func ReplaceTournamentPlayersHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		list, ok := body.([]any)
		if !ok {
			RespondError(w, r, apperr.New(apperr.ValidationMissingFields, msgInvalidBody))
			return
		}
		list, err = store.ReplacePlayers(r.Context(), r.PathValue("torneioId"), list)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func DeleteTournamentPlayerHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemovePlayer(r.Context(), r.PathValue("torneioId"), r.PathValue("playerId")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Jogador removido com sucesso")
	}
}

func ListTournamentMatchupsHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListMatchups(r.Context(), r.PathValue("torneioId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

// PutTournamentMatchupsHandler upserts one matchup by fase when the body is an
// object, and replaces the whole bracket when it is an array.
func PutTournamentMatchupsHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		id := r.PathValue("torneioId")
		switch v := body.(type) {
		case map[string]any:
			matchup, err := store.UpsertMatchup(r.Context(), id, v)
			if err != nil {
				RespondError(w, r, err)
				return
			}
			RespondJSON(w, http.StatusOK, matchup)
		case []any:
			list, err := store.ReplaceMatchups(r.Context(), id, v)
			if err != nil {
				RespondError(w, r, err)
				return
			}
			RespondJSON(w, http.StatusOK, list)
		default:
			RespondError(w, r, apperr.New(apperr.ValidationMissingFields, msgInvalidBody))
		}
	}
}

func GetTournamentMatchupHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchup, err := store.GetMatchup(r.Context(), r.PathValue("torneioId"), r.PathValue("fase"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, matchup)
	}
}

func DeleteTournamentMatchupHandler(store tournaments.TournamentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemoveMatchup(r.Context(), r.PathValue("torneioId"), r.PathValue("fase")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Confronto removido com sucesso")
	}
}
