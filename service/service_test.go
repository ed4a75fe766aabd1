package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hpmalinova/Household-Manager/config"
	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
	"github.com/hpmalinova/Household-Manager/repository"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) contract.Store {
	t.Helper()

	db, err := repository.Open(config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "service.db"),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return repository.NewStore(db)
}

// household is a group with an admin, a regular member and a user who
// belongs to no group.
type household struct {
	store    contract.Store
	group    *model.Group
	admin    *model.User
	member   *model.User
	outsider *model.User
	adminM   *model.GroupMember
	memberM  *model.GroupMember
}

func newHousehold(t *testing.T) household {
	t.Helper()
	ctx := context.Background()
	s := newTestStore(t)

	h := household{store: s}
	h.admin = createUser(t, s, "alice")
	h.member = createUser(t, s, "bob")
	h.outsider = createUser(t, s, "mallory")

	group, err := NewGroups(s).Create(ctx, h.admin.ID, model.CreateGroup{Name: "Flat 4B"})
	require.NoError(t, err)
	h.group = group

	view, err := NewMembership(s, DefaultPolicy()).Add(ctx, h.admin.ID, group.ID, "bob")
	require.NoError(t, err)
	h.memberM = &view.GroupMember

	h.adminM, err = s.Members().FindByUserAndGroup(ctx, h.admin.ID, group.ID)
	require.NoError(t, err)
	return h
}

func createUser(t *testing.T, s contract.Store, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}
