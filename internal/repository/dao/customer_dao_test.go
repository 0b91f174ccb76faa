package dao

import (
	"context"
	"testing"

	"go-customerapi/internal/domain/model"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCustomerDAOFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	rows := sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("C-100", "Ada Lovelace", "36")
	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).WithArgs("C-100", 1).WillReturnRows(rows)

	c, err := d.FindByID(context.Background(), "C-100")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "C-100", c.ID)
	require.Equal(t, "Ada Lovelace", c.Name)
	require.Equal(t, "36", c.Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDAOFindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE id = \$1`).
		WithArgs("nope", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	c, err := d.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestCustomerDAOCreate(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	mock.ExpectExec(`INSERT INTO "customer"`).
		WithArgs("C-100", "Ada Lovelace", "36").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := d.Create(context.Background(), &model.Customer{ID: "C-100", Name: "Ada Lovelace", Age: "36"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDAOUpdateFields(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	// single column, empty value is still written as-is
	mock.ExpectExec(`UPDATE "customer" SET`).
		WithArgs("", "C-100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := d.UpdateFields(context.Background(), "C-100", map[string]interface{}{"name": ""})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDAOUpdateFieldsEmptySet(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	// no columns means no statement at all
	err := d.UpdateFields(context.Background(), "C-100", nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDAODelete(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	mock.ExpectExec(`DELETE FROM "customer" WHERE id = \$1`).
		WithArgs("C-100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, d.Delete(context.Background(), "C-100"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDAOList(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewCustomerDAO(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "customer"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).
			AddRow("C-100", "Ada Lovelace", "36").
			AddRow("C-101", "Grace Hopper", "47"))

	list, total, err := d.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	require.Equal(t, "C-101", list[1].ID)
}
