package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/contract"
	"gorm.io/gorm"
)

var _ contract.Store = (*GormStore)(nil)

// GormStore implements contract.Store on a gorm handle. The zero value is not
// usable; build it with NewStore.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() contract.UserRepo                 { return &UserRepoGorm{db: s.db} }
func (s *GormStore) Groups() contract.GroupRepo               { return &GroupRepoGorm{db: s.db} }
func (s *GormStore) Members() contract.MemberRepo             { return &MemberRepoGorm{db: s.db} }
func (s *GormStore) Expenses() contract.ExpenseRepo           { return &ExpenseRepoGorm{db: s.db} }
func (s *GormStore) Contributions() contract.ContributionRepo { return &ContributionRepoGorm{db: s.db} }
func (s *GormStore) Tasks() contract.TaskRepo                 { return &TaskRepoGorm{db: s.db} }

// Transaction runs fn against a store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx contract.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
