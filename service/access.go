package service

import (
	"context"
	"errors"

	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
)

// requireMember resolves userID to its membership in groupID.
func requireMember(ctx context.Context, s contract.Store, userID, groupID uint) (*model.GroupMember, error) {
	member, err := s.Members().FindByUserAndGroup(ctx, userID, groupID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.Forbiddenf("you are not a member of this group")
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func requireAdmin(ctx context.Context, s contract.Store, userID, groupID uint) (*model.GroupMember, error) {
	member, err := requireMember(ctx, s, userID, groupID)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin {
		return nil, model.Forbiddenf("only group admins can do this")
	}
	return member, nil
}
