package rest

import (
	"context"
	"net/http"

	"github.com/hpmalinova/Household-Manager/model"
)

func (a *App) addGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	in := &model.CreateGroup{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	group, err := a.Groups.Create(r.Context(), userID, *in)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, group)
}

func (a *App) getGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	start, count, ok := getStartCount(w, r)
	if !ok {
		return
	}

	groups, err := a.Groups.List(r.Context(), userID, start, count)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, groups)
}

func (a *App) getGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	groupID, ok := pathID(w, r, "groupId")
	if !ok {
		return
	}

	group, err := a.Groups.Get(r.Context(), userID, groupID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (a *App) updateGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	groupID, ok := pathID(w, r, "groupId")
	if !ok {
		return
	}
	patch := &model.UpdateGroup{}
	if !a.decodeAndValidate(w, r, patch) {
		return
	}

	group, err := a.Groups.Update(r.Context(), userID, groupID, *patch)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}

func (a *App) deleteGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	groupID, ok := pathID(w, r, "groupId")
	if !ok {
		return
	}

	if err := a.Groups.Delete(r.Context(), userID, groupID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) getMembers(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	groupID, ok := pathID(w, r, "groupId")
	if !ok {
		return
	}

	members, err := a.Membership.List(r.Context(), userID, groupID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, members)
}

func (a *App) addMember(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	in := &model.AddMember{}
	if !a.decodeAndValidate(w, r, in) {
		return
	}

	member, err := a.Membership.Add(r.Context(), userID, in.GroupID, in.Username)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, member)
}

func (a *App) promoteMember(w http.ResponseWriter, r *http.Request) {
	a.changeRole(w, r, a.Membership.Promote)
}

func (a *App) demoteMember(w http.ResponseWriter, r *http.Request) {
	a.changeRole(w, r, a.Membership.Demote)
}

type roleChange func(ctx context.Context, callerID, memberID uint) (*model.GroupMember, error)

func (a *App) changeRole(w http.ResponseWriter, r *http.Request, change roleChange) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	member, err := change(r.Context(), userID, memberID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, member)
}

func (a *App) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := a.Membership.Remove(r.Context(), userID, memberID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
