package handlers

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/students"
)

func ListStudentsHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), r.URL.Query().Get("busca"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, list)
	}
}

func CreateStudentHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		student, err := store.Create(r.Context(), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusCreated, student)
	}
}

// StudentsByCategoryHandler lists the names of the students in a category.
func StudentsByCategoryHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := store.NamesByCategory(r.Context(), r.PathValue("categoria"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, names)
	}
}

func UpdateStudentHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		student, err := store.Update(r.Context(), r.PathValue("nome"), body)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, student)
	}
}

func DeleteStudentHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("nome")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Aluno removido com sucesso")
	}
}

func GetStudentNoteHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		note, err := store.GetNote(r.Context(), r.PathValue("nome"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, map[string]string{students.FieldNote: note})
	}
}

func SetStudentNoteHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeObject(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		note, ok := body[students.FieldNote].(string)
		if !ok {
			RespondError(w, r, apperr.MissingFields(students.FieldNote))
			return
		}
		if err := store.SetNote(r.Context(), r.PathValue("nome"), note); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondJSON(w, http.StatusOK, map[string]string{students.FieldNote: note})
	}
}

func DeleteStudentNoteHandler(store students.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearNote(r.Context(), r.PathValue("nome")); err != nil {
			RespondError(w, r, err)
			return
		}
		RespondMessage(w, http.StatusOK, "Anotação removida com sucesso")
	}
}
