package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
)

// Board tracks a group's chores. Stage and assignee change independently and
// any stage may follow any other.
type Board struct {
	store contract.Store
}

func NewBoard(store contract.Store) *Board {
	return &Board{store: store}
}

func (b *Board) CreateTask(ctx context.Context, userID uint, in model.CreateTask) (*model.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, model.Validationf("name is required")
	}
	if _, err := b.store.Groups().FindByID(ctx, in.GroupID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, b.store, userID, in.GroupID); err != nil {
		return nil, err
	}

	task := &model.Task{
		GroupID:     in.GroupID,
		Name:        name,
		Description: in.Description,
		Due:         in.Due,
		Stage:       model.StageToDo,
	}
	if err := b.store.Tasks().Create(ctx, task); err != nil {
		return nil, err
	}

	slog.Info("Task created", "task_id", task.ID, "group_id", task.GroupID, "user_id", userID)
	return task, nil
}

func (b *Board) GetTask(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := b.store.Tasks().FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, b.store, userID, task.GroupID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the group's tasks, optionally only those in stage.
func (b *Board) ListTasks(ctx context.Context, userID, groupID uint, stage string, start, count int) ([]model.Task, error) {
	var filter model.Stage
	if stage != "" {
		var err error
		if filter, err = model.ParseStage(stage); err != nil {
			return nil, err
		}
	}
	if _, err := b.store.Groups().FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, b.store, userID, groupID); err != nil {
		return nil, err
	}
	return b.store.Tasks().FindByGroup(ctx, groupID, filter, start, count)
}

func (b *Board) UpdateTask(ctx context.Context, userID, taskID uint, patch model.UpdateTask) (*model.Task, error) {
	var task *model.Task
	err := b.mutate(ctx, userID, taskID, func(tx contract.Store, t *model.Task, _ *model.GroupMember) error {
		var fields []string
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return model.Validationf("name must not be empty")
			}
			t.Name = name
			fields = append(fields, "Name")
		}
		if patch.Description != nil {
			t.Description = *patch.Description
			fields = append(fields, "Description")
		}
		if patch.Due != nil {
			t.Due = patch.Due
			fields = append(fields, "Due")
		}
		if len(fields) == 0 {
			return model.Validationf("nothing to update")
		}
		if err := tx.Tasks().Update(ctx, t, fields); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Task updated", "task_id", taskID, "user_id", userID)
	return task, nil
}

func (b *Board) DeleteTask(ctx context.Context, userID, taskID uint) error {
	err := b.mutate(ctx, userID, taskID, func(tx contract.Store, t *model.Task, _ *model.GroupMember) error {
		return tx.Tasks().Delete(ctx, t.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// Claim assigns the task to the caller's membership in the task's group.
// A task claimed by someone else is reassigned.
func (b *Board) Claim(ctx context.Context, taskID, userID uint) (*model.Task, error) {
	var task *model.Task
	err := b.mutate(ctx, userID, taskID, func(tx contract.Store, t *model.Task, member *model.GroupMember) error {
		if err := tx.Tasks().SetAssignee(ctx, t.ID, &member.ID); err != nil {
			return err
		}
		t.GroupMemberID = &member.ID
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	tasksClaimed.Inc()
	slog.Info("Task claimed", "task_id", taskID, "member_id", *task.GroupMemberID)
	return task, nil
}

// Unclaim clears the assignee. Unclaiming an unclaimed task is not an error.
func (b *Board) Unclaim(ctx context.Context, taskID, userID uint) (*model.Task, error) {
	var task *model.Task
	err := b.mutate(ctx, userID, taskID, func(tx contract.Store, t *model.Task, _ *model.GroupMember) error {
		if t.GroupMemberID != nil {
			if err := tx.Tasks().SetAssignee(ctx, t.ID, nil); err != nil {
				return err
			}
			t.GroupMemberID = nil
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Task unclaimed", "task_id", taskID, "user_id", userID)
	return task, nil
}

func (b *Board) ChangeStage(ctx context.Context, taskID, userID uint, stage string) (*model.Task, error) {
	next, err := model.ParseStage(stage)
	if err != nil {
		return nil, err
	}

	var task *model.Task
	err = b.mutate(ctx, userID, taskID, func(tx contract.Store, t *model.Task, _ *model.GroupMember) error {
		if err := tx.Tasks().SetStage(ctx, t.ID, next); err != nil {
			return err
		}
		t.Stage = next
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	stageChanges.WithLabelValues(string(next)).Inc()
	slog.Info("Task stage changed", "task_id", taskID, "stage", next, "user_id", userID)
	return task, nil
}

// mutate locks the task, resolves the caller's membership in its group and
// runs fn in the same transaction.
func (b *Board) mutate(ctx context.Context, userID, taskID uint, fn func(tx contract.Store, task *model.Task, member *model.GroupMember) error) error {
	return b.store.Transaction(ctx, func(tx contract.Store) error {
		task, err := tx.Tasks().FindByIDForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		member, err := requireMember(ctx, tx, userID, task.GroupID)
		if err != nil {
			return err
		}
		return fn(tx, task, member)
	})
}
