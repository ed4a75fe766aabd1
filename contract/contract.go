package contract

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"github.com/shopspring/decimal"
)

type UserRepo interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	// SharesGroup reports whether the two users are members of a common group.
	SharesGroup(ctx context.Context, userID, otherID uint) (bool, error)
}

type GroupRepo interface {
	Create(ctx context.Context, group *model.Group) error
	FindByID(ctx context.Context, id uint) (*model.Group, error)
	FindByUser(ctx context.Context, userID uint, start, count int) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group, fields []string) error
	// Delete removes the group together with its members, tasks, expenses
	// and contributions.
	Delete(ctx context.Context, id uint) error
}

type MemberRepo interface {
	// Add fails with model.ErrConflict when the user already belongs to the group.
	Add(ctx context.Context, member *model.GroupMember) error
	FindByID(ctx context.Context, id uint) (*model.GroupMember, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.GroupMember, error)
	FindByUserAndGroup(ctx context.Context, userID, groupID uint) (*model.GroupMember, error)
	FindByGroup(ctx context.Context, groupID uint) ([]model.MemberView, error)
	// LockAdmins returns the group's admins ordered by id and locks their rows
	// until the surrounding transaction ends.
	LockAdmins(ctx context.Context, groupID uint) ([]model.GroupMember, error)
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error
	Remove(ctx context.Context, id uint) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id uint) (*model.Expense, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Expense, error)
	FindByGroup(ctx context.Context, groupID uint, start, count int) ([]model.Expense, error)
	Update(ctx context.Context, expense *model.Expense, fields []string) error
	// Delete removes the expense and its contributions.
	Delete(ctx context.Context, id uint) error
}

type ContributionRepo interface {
	// Upsert inserts the contribution or replaces the value of the member's
	// existing one, then reloads it.
	Upsert(ctx context.Context, contribution *model.Contribution) error
	FindByExpense(ctx context.Context, expenseID uint) ([]model.ContributionView, error)
	Totals(ctx context.Context, expenseIDs []uint) (map[uint]decimal.Decimal, error)
	CountByMember(ctx context.Context, memberID uint) (int64, error)
}

type TaskRepo interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Task, error)
	FindByGroup(ctx context.Context, groupID uint, stage model.Stage, start, count int) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task, fields []string) error
	SetAssignee(ctx context.Context, id uint, memberID *uint) error
	SetStage(ctx context.Context, id uint, stage model.Stage) error
	Delete(ctx context.Context, id uint) error
	UnclaimByMember(ctx context.Context, memberID uint) (int64, error)
	CountByMember(ctx context.Context, memberID uint) (int64, error)
}

// Store hands out repositories bound to one database handle. Inside
// Transaction every repository shares the transaction.
type Store interface {
	Users() UserRepo
	Groups() GroupRepo
	Members() MemberRepo
	Expenses() ExpenseRepo
	Contributions() ContributionRepo
	Tasks() TaskRepo

	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
