package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/players"
)

func ListPlayersHandler(store players.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), r.URL.Query().Get("nome"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func GetPlayerHandler(store players.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, player)
	}
}

func CreatePlayerHandler(store players.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		player, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, player)
	}
}

func UpdatePlayerHandler(store players.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		player, err := store.Update(r.Context(), r.PathValue("id"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, player)
	}
}

func DeletePlayerHandler(store players.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("id")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Jogador removido com sucesso")
	}
}
