package service

import (
	"context"
	"testing"

	"go-customerapi/internal/repository/dao"
	"go-customerapi/internal/security/jwt"
	"go-customerapi/pkg/crypto"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	j := jwt.NewManager("0123456789abcdef0123456789abcdef", 3600, "test")
	return NewAuthService(dao.NewAccountDAO(db), j, nil), mock
}

func accountColumns() []string {
	return []string{"id", "username", "nickname", "password", "create_time", "update_time", "status"}
}

func TestEnsureAccountSeedsWhenMissing(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT \* FROM "account" WHERE username = \$1`).
		WithArgs("admin", 1).WillReturnRows(sqlmock.NewRows(accountColumns()))
	mock.ExpectQuery(`INSERT INTO "account"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, svc.EnsureAccount(context.Background(), "admin", "first-run-pass"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAccountIdempotent(t *testing.T) {
	svc, mock := newAuthService(t)

	hashed, err := crypto.HashPassword("whatever")
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "account" WHERE username = \$1`).
		WithArgs("admin", 1).
		WillReturnRows(sqlmock.NewRows(accountColumns()).AddRow(1, "admin", "admin", hashed, 0, 0, 1))

	// 已存在: 不应触发 INSERT
	require.NoError(t, svc.EnsureAccount(context.Background(), "admin", "first-run-pass"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePasswordRotatesHash(t *testing.T) {
	svc, mock := newAuthService(t)

	hashed, err := crypto.HashPassword("old-secret")
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "account" WHERE "account"\."id" = \$1`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(accountColumns()).AddRow(7, "admin", "admin", hashed, 0, 0, 1))
	mock.ExpectExec(`UPDATE "account" SET "password"=\$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.ChangePassword(context.Background(), 7, "old-secret", "new-secret"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePasswordRejectsWrongOld(t *testing.T) {
	svc, mock := newAuthService(t)

	hashed, err := crypto.HashPassword("old-secret")
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "account" WHERE "account"\."id" = \$1`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(accountColumns()).AddRow(7, "admin", "admin", hashed, 0, 0, 1))

	err = svc.ChangePassword(context.Background(), 7, "not-the-old-one", "new-secret")
	require.EqualError(t, err, "old password mismatch")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInfoMissingAccount(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT \* FROM "account" WHERE "account"\."id" = \$1`).
		WithArgs(int64(42), 1).WillReturnRows(sqlmock.NewRows(accountColumns()))

	_, err := svc.Info(context.Background(), 42)
	require.EqualError(t, err, "not found")
}
