package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/hpmalinova/Household-Manager/model"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithValidationError(fields map[string]string, w http.ResponseWriter) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": "validation failed",
		"errors":  fields,
	})
}

var statusByKind = map[model.Kind]int{
	model.KindValidation:      http.StatusBadRequest,
	model.KindUnauthenticated: http.StatusUnauthorized,
	model.KindForbidden:       http.StatusForbidden,
	model.KindNotFound:        http.StatusNotFound,
	model.KindConflict:        http.StatusConflict,
}

// respondWithDomainError maps err onto a status code. Anything outside the
// model taxonomy is logged and reported as an internal error.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code, ok := statusByKind[model.KindOf(err)]
	if !ok {
		slog.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(requestIDHeader),
			"error", err,
		)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondWithError(w, code, model.MessageOf(err))
}

// decodeAndValidate reads the JSON body into dst and runs the validator on it.
// It writes the error response itself and reports whether the handler may go on.
func (a *App) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := a.Validator.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			// translate all error at once
			respondWithValidationError(errs.Translate(a.Translator), w)
			return false
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// maxPageSize caps count on every list route; a missing or out of range
// count asks for a full page.
const maxPageSize = 100

// getStartCount reads the 1-based start and the page size from the query and
// returns the 0-based offset and the limit.
func getStartCount(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	start, ok := queryInt(w, r, "start")
	if !ok {
		return 0, 0, false
	}
	count, ok := queryInt(w, r, "count")
	if !ok {
		return 0, 0, false
	}

	if count < 1 || count > maxPageSize {
		count = maxPageSize
	}
	if start < 1 {
		start = 1
	}
	return start - 1, count, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request "+name+" parameter")
		return 0, false
	}
	return n, true
}
