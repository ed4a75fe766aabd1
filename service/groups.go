package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
)

type Groups struct {
	store contract.Store
}

func NewGroups(store contract.Store) *Groups {
	return &Groups{store: store}
}

// Create stores the group and makes userID its first admin.
func (g *Groups) Create(ctx context.Context, userID uint, in model.CreateGroup) (*model.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, model.Validationf("name is required")
	}

	group := &model.Group{
		Name:        name,
		Description: in.Description,
		WhatsappURL: in.WhatsappURL,
	}
	err := g.store.Transaction(ctx, func(tx contract.Store) error {
		if err := tx.Groups().Create(ctx, group); err != nil {
			return err
		}
		return tx.Members().Add(ctx, &model.GroupMember{
			UserID:  userID,
			GroupID: group.ID,
			IsAdmin: true,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "user_id", userID)
	return group, nil
}

func (g *Groups) Get(ctx context.Context, userID, groupID uint) (*model.Group, error) {
	group, err := g.store.Groups().FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, g.store, userID, groupID); err != nil {
		return nil, err
	}
	return group, nil
}

func (g *Groups) List(ctx context.Context, userID uint, start, count int) ([]model.Group, error) {
	return g.store.Groups().FindByUser(ctx, userID, start, count)
}

func (g *Groups) Update(ctx context.Context, userID, groupID uint, patch model.UpdateGroup) (*model.Group, error) {
	var fields []string
	var updated *model.Group
	err := g.store.Transaction(ctx, func(tx contract.Store) error {
		group, err := tx.Groups().FindByID(ctx, groupID)
		if err != nil {
			return err
		}
		if _, err := requireMember(ctx, tx, userID, groupID); err != nil {
			return err
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return model.Validationf("name must not be empty")
			}
			group.Name = name
			fields = append(fields, "Name")
		}
		if patch.Description != nil {
			group.Description = *patch.Description
			fields = append(fields, "Description")
		}
		if patch.WhatsappURL != nil {
			group.WhatsappURL = *patch.WhatsappURL
			fields = append(fields, "WhatsappURL")
		}
		if len(fields) == 0 {
			return model.Validationf("nothing to update")
		}

		if err := tx.Groups().Update(ctx, group, fields); err != nil {
			return err
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group updated", "group_id", groupID, "user_id", userID, "fields", fields)
	return updated, nil
}

// Delete removes the group and everything it owns. Only admins may do it.
func (g *Groups) Delete(ctx context.Context, userID, groupID uint) error {
	err := g.store.Transaction(ctx, func(tx contract.Store) error {
		if _, err := tx.Groups().FindByID(ctx, groupID); err != nil {
			return err
		}
		if _, err := requireAdmin(ctx, tx, userID, groupID); err != nil {
			return err
		}
		return tx.Groups().Delete(ctx, groupID)
	})
	if err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID, "user_id", userID)
	return nil
}
