package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// translate maps store errors onto the model taxonomy. Unknown errors are
// returned untouched and surface as internal errors.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &model.Error{Kind: model.KindNotFound, Message: entity + " not found", Err: err}
	case isDuplicate(err):
		return &model.Error{Kind: model.KindConflict, Message: entity + " already exists", Err: err}
	}
	return err
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
