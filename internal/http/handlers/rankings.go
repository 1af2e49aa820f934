package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/rankings"
)

func ListRankingsHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func GetRankingHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := store.Get(r.Context(), r.PathValue("rankingId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, ranking)
	}
}

func CreateRankingHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		ranking, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, ranking)
	}
}

func UpdateRankingHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		ranking, err := store.Update(r.Context(), r.PathValue("rankingId"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, ranking)
	}
}

func DeleteRankingHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("rankingId")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Ranking removido com sucesso")
	}
}

func ListRankingPlayersHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListPlayers(r.Context(), r.PathValue("rankingId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func GetRankingPlayerHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), r.PathValue("rankingId"), r.PathValue("playerId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, player)
	}
}

func AddRankingPlayerHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		player, err := store.AddPlayer(r.Context(), r.PathValue("rankingId"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, player)
	}
}

func UpdateRankingPlayerHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		player, err := store.UpdatePlayer(r.Context(), r.PathValue("rankingId"), r.PathValue("playerId"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, player)
	}
}

func DeleteRankingPlayerHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemovePlayer(r.Context(), r.PathValue("rankingId"), r.PathValue("playerId")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Jogador removido com sucesso")
	}
}

func ListRankingRoundsHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rounds, err := store.Rounds(r.Context(), r.PathValue("rankingId"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, rounds)
	}
}

// CreateRankingRoundHandler expects {"rodada": ..., "confrontos": [...]}.
// An existing round with the same label is overwritten.
func CreateRankingRoundHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		rodada := ident.FormatID(body["rodada"])
		if rodada == "" {
			RespondError(w, r, apperr.MissingFields("rodada"))
			return
		}
		confrontos := body["confrontos"]
		if confrontos == nil {
			confrontos = []any{}
		}
		if err := store.CreateRound(r.Context(), r.PathValue("rankingId"), rodada, confrontos); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, map[string]any{"rodada": rodada, "confrontos": confrontos})
	}
}

func GetRankingRoundHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := store.GetRound(r.Context(), r.PathValue("rankingId"), r.PathValue("rodada"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, round)
	}
}

// SetRankingRoundHandler stores the request body as the round, unchanged.
func SetRankingRoundHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		if body == nil {
			RespondError(w, r, apperr.New(apperr.ValidationMissingFields, msgInvalidBody))
			return
		}
		if err := store.SetRound(r.Context(), r.PathValue("rankingId"), r.PathValue("rodada"), body); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, body)
	}
}

func DeleteRankingRoundHandler(store rankings.RankingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteRound(r.Context(), r.PathValue("rankingId"), r.PathValue("rodada")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Rodada removida com sucesso")
	}
}
