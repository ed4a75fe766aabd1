package rest

import (
	"net/http"

	"github.com/hpmalinova/Household-Manager/model"
)

func (a *App) addExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	in := &model.CreateExpense{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	expense, err := a.Ledger.CreateExpense(r.Context(), userID, *in)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, expense)
}

func (a *App) getExpenses(w http.ResponseWriter, r *http.Request) {
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

	expenses, err := a.Ledger.ListExpenses(r.Context(), userID, groupID, start, count)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expenses)
}

func (a *App) getExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	expense, err := a.Ledger.GetExpense(r.Context(), userID, id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expense)
}

func (a *App) updateExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch := &model.UpdateExpense{}
	if !a.decodeAndValidate(w, r, patch) {
		return
	}

	expense, err := a.Ledger.UpdateExpense(r.Context(), userID, id, *patch)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expense)
}

func (a *App) deleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := a.Ledger.DeleteExpense(r.Context(), userID, id); err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) getContributions(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contributions, err := a.Ledger.ListContributions(r.Context(), userID, id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contributions)
}

func (a *App) addContribution(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	in := &model.RecordContribution{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	contribution, err := a.Ledger.RecordContribution(r.Context(), userID, in.ExpenseID, in.Value)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, contribution)
}
