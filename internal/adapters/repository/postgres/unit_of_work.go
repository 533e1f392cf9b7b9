package postgres

import (
	"context"
	"database/sql"

	"hazard-watch/internal/core/port"
)

// SQLQuerier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// so repositories run unchanged inside and outside a transaction
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) querier() SQLQuerier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *sqlUnitOfWork) UserRepo() port.UserRepository {
	return NewSqlUserRepository(u.querier())
}

func (u *sqlUnitOfWork) VideoRepo() port.VideoRepository {
	return NewSqlVideoRepository(u.querier())
}

func (u *sqlUnitOfWork) DetectionRepo() port.DetectionRepository {
	return NewSqlDetectionRepository(u.querier())
}

func (u *sqlUnitOfWork) ActionLogRepo() port.ActionLogRepository {
	return NewSqlActionLogRepository(u.querier())
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
