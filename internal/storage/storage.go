package storage

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"smmpanel-bot/internal/infra/sqlite3"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	gosqlite3 "github.com/mattn/go-sqlite3"
)

type storageImpl struct {
	db   *sqlx.DB
	inTx sqlite3.TxManager
	now  func() time.Time
}

func New(db *sqlite3.DB) *storageImpl {
	return &storageImpl{
		db:   db.DB,
		inTx: db.TxManager(nil),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *storageImpl) stmpBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// fields lists the db-tagged columns of a row struct.
func fields(data any) string {
	var cols []string
	r := reflect.TypeOf(data)
	for i := 0; i < r.NumField(); i++ {
		if tag := r.Field(i).Tag.Get("db"); tag != "" {
			cols = append(cols, tag)
		}
	}
	return strings.Join(cols, ",")
}

func isUniqueViolation(err error) bool {
	var sqliteErr gosqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == gosqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == gosqlite3.ErrConstraintPrimaryKey
	}
	return false
}
