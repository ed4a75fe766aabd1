package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
)

type Membership struct {
	store  contract.Store
	policy Policy
}

func NewMembership(store contract.Store, policy Policy) *Membership {
	return &Membership{store: store, policy: policy}
}

// Add puts the user named username into groupID. Any member of the group may
// add people; adding someone twice fails with a conflict.
func (m *Membership) Add(ctx context.Context, callerID, groupID uint, username string) (*model.MemberView, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.Validationf("username is required")
	}

	var view *model.MemberView
	err := m.store.Transaction(ctx, func(tx contract.Store) error {
		if _, err := tx.Groups().FindByID(ctx, groupID); err != nil {
			return err
		}
		if _, err := requireMember(ctx, tx, callerID, groupID); err != nil {
			return err
		}

		user, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		member := &model.GroupMember{UserID: user.ID, GroupID: groupID}
		if err := tx.Members().Add(ctx, member); err != nil {
			return err
		}
		view = &model.MemberView{GroupMember: *member, Username: user.Username}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Member added", "group_id", groupID, "member_id", view.ID, "added_by", callerID)
	return view, nil
}

func (m *Membership) List(ctx context.Context, callerID, groupID uint) ([]model.MemberView, error) {
	if _, err := m.store.Groups().FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, m.store, callerID, groupID); err != nil {
		return nil, err
	}
	return m.store.Members().FindByGroup(ctx, groupID)
}

func (m *Membership) Promote(ctx context.Context, callerID, memberID uint) (*model.GroupMember, error) {
	return m.setAdmin(ctx, callerID, memberID, true)
}

// Demote clears the admin flag. Whether the last admin may be demoted is
// decided by Policy.AllowLastAdminDemotion.
func (m *Membership) Demote(ctx context.Context, callerID, memberID uint) (*model.GroupMember, error) {
	return m.setAdmin(ctx, callerID, memberID, false)
}

func (m *Membership) setAdmin(ctx context.Context, callerID, memberID uint, isAdmin bool) (*model.GroupMember, error) {
	var member *model.GroupMember
	err := m.store.Transaction(ctx, func(tx contract.Store) error {
		target, err := tx.Members().FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if _, err := requireAdmin(ctx, tx, callerID, target.GroupID); err != nil {
			return err
		}
		if !isAdmin {
			if err := m.guardLastAdmin(ctx, tx, target.GroupID, target.ID); err != nil {
				return err
			}
		}

		member, err = tx.Members().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return err
		}
		if err := tx.Members().SetAdmin(ctx, member.ID, isAdmin); err != nil {
			return err
		}
		member.IsAdmin = isAdmin
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Member role changed", "member_id", memberID, "is_admin", isAdmin, "changed_by", callerID)
	return member, nil
}

// guardLastAdmin locks the group's admin rows and refuses to let memberID
// leave them when it is the only one. The admin rows are always locked before
// the target row.
func (m *Membership) guardLastAdmin(ctx context.Context, tx contract.Store, groupID, memberID uint) error {
	if m.policy.AllowLastAdminDemotion {
		return nil
	}
	admins, err := tx.Members().LockAdmins(ctx, groupID)
	if err != nil {
		return err
	}
	if len(admins) == 1 && admins[0].ID == memberID {
		return model.Conflictf("a group must keep at least one admin")
	}
	return nil
}

// Remove deletes a membership. Claimed tasks and contributions are handled
// according to Policy.MemberRemoval.
func (m *Membership) Remove(ctx context.Context, callerID, memberID uint) error {
	var released int64
	err := m.store.Transaction(ctx, func(tx contract.Store) error {
		target, err := tx.Members().FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if _, err := requireAdmin(ctx, tx, callerID, target.GroupID); err != nil {
			return err
		}
		if err := m.guardLastAdmin(ctx, tx, target.GroupID, target.ID); err != nil {
			return err
		}
		member, err := tx.Members().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return err
		}

		switch m.policy.MemberRemoval {
		case RemovalBlock:
			if err := checkNothingOutstanding(ctx, tx, member.ID); err != nil {
				return err
			}
		default:
			released, err = tx.Tasks().UnclaimByMember(ctx, member.ID)
			if err != nil {
				return err
			}
		}

		return tx.Members().Remove(ctx, member.ID)
	})
	if err != nil {
		return err
	}

	membersRemoved.WithLabelValues(string(m.policy.MemberRemoval)).Inc()
	slog.Info("Member removed", "member_id", memberID, "removed_by", callerID, "tasks_released", released)
	return nil
}

func checkNothingOutstanding(ctx context.Context, tx contract.Store, memberID uint) error {
	tasks, err := tx.Tasks().CountByMember(ctx, memberID)
	if err != nil {
		return err
	}
	contributions, err := tx.Contributions().CountByMember(ctx, memberID)
	if err != nil {
		return err
	}
	if tasks > 0 || contributions > 0 {
		return model.Conflictf("member still has claimed tasks or contributions")
	}
	return nil
}
