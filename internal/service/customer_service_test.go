package service

import (
	"context"
	"testing"
	"time"

	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/repository/dao"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newService(t *testing.T) (*CustomerService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	svc := NewCustomerServiceWithCache(dao.NewCustomerDAO(db), cache.New(time.Minute), 30*time.Second, time.Minute)
	return svc, mock
}

func emptyCustomerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "age"})
}

func TestAddWithCallerSuppliedID(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).WillReturnRows(emptyCustomerRows())
	mock.ExpectExec(`INSERT INTO "customer"`).
		WithArgs("C-100", "Ada Lovelace", "36").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := svc.Add(context.Background(), AddCustomerParams{ID: "C-100", Name: "Ada Lovelace", Age: "36"})
	require.NoError(t, err)
	require.Equal(t, "C-100", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddGeneratesIDWhenAbsent(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnRows(emptyCustomerRows())
	mock.ExpectExec(`INSERT INTO "customer"`).
		WithArgs(sqlmock.AnyArg(), "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := svc.Add(context.Background(), AddCustomerParams{})
	require.NoError(t, err)
	require.NotEmpty(t, id)
}

func TestAddRejectsDuplicate(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "x", "y"))

	_, err := svc.Add(context.Background(), AddCustomerParams{ID: "C-100"})
	require.EqualError(t, err, "customer exists")
}

func TestEditReplacesOnlyPresentFields(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "Ada Lovelace", "36"))
	// empty string is a deliberate value, written as-is; age column untouched
	mock.ExpectExec(`UPDATE "customer" SET`).
		WithArgs("", "C-100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := ""
	err := svc.Edit(context.Background(), EditCustomerParams{ID: "C-100", Name: &name})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEditNoFieldsIsNoop(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "Ada Lovelace", "36"))

	err := svc.Edit(context.Background(), EditCustomerParams{ID: "C-100"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInfoServedFromCacheOnSecondRead(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "Ada Lovelace", "36"))

	dto, err := svc.GetInfo(context.Background(), "C-100")
	require.NoError(t, err)
	require.Equal(t, "36", dto.Age)

	// no second query expectation: cache must answer
	dto2, err := svc.GetInfo(context.Background(), "C-100")
	require.NoError(t, err)
	require.Equal(t, dto, dto2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteInvalidatesInfoCache(t *testing.T) {
	svc, mock := newService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "Ada Lovelace", "36"))
	_, err := svc.GetInfo(ctx, "C-100")
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM "customer" WHERE id = \$1`).
		WithArgs("C-100").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.Delete(ctx, "C-100"))

	// cache entry gone, next read goes back to the DB
	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("C-100", 1).WillReturnRows(emptyCustomerRows())
	_, err = svc.GetInfo(ctx, "C-100")
	require.EqualError(t, err, "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}
