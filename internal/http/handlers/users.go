package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/users"
)

func CreateUserHandler(store users.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		user, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, user)
	}
}

func LoginHandler(store users.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		email, _ := body[users.FieldEmail].(string)
		password, _ := body[users.FieldPassword].(string)
		user, err := store.Login(r.Context(), email, password)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, user)
	}
}

func UpdateUserDataHandler(store users.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		user, err := store.UpdateData(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, user)
	}
}

func GetUserHandler(store users.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := store.Get(r.Context(), r.PathValue("email"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, user)
	}
}
