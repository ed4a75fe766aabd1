package rest

import (
	"net/http"

	"github.com/hpmalinova/Household-Manager/model"
)

func (a *App) addTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	in := &model.CreateTask{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	task, err := a.Board.CreateTask(r.Context(), userID, *in)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

// getTasks lists a group's tasks; ?stage= narrows them to one stage.
func (a *App) getTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	groupID, ok := pathID(w, r, "groupId")
	if !ok {
		return
	}
	start, count, ok := getStartCount(w, r)
	if !ok {
		return
	}

	tasks, err := a.Board.ListTasks(r.Context(), userID, groupID, r.FormValue("stage"), start, count)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (a *App) getTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := a.Board.GetTask(r.Context(), userID, id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (a *App) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch := &model.UpdateTask{}
	if !a.decodeAndValidate(w, r, patch) {
		return
	}

	task, err := a.Board.UpdateTask(r.Context(), userID, id, *patch)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (a *App) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := a.Board.DeleteTask(r.Context(), userID, id); err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) claimTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := a.Board.Claim(r.Context(), id, userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (a *App) unclaimTask(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := a.Board.Unclaim(r.Context(), id, userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (a *App) changeTaskStage(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	in := &model.ChangeStage{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	task, err := a.Board.ChangeStage(r.Context(), id, userID, in.Stage)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}
