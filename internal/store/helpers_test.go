package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

const testUserID = "0190a0b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"

func newTestConn(t *testing.T) (*conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return newConn(db, postgresDialect, NewPostgresErrorClassifier()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var contactRowColumns = []string{
	"id", "user_id", "first_name", "last_name", "birth_date",
	"address1", "address2", "city", "state", "zip_code",
	"email", "phone_number", "image_type", "version", "created_at",
}

func contactRows() *sqlmock.Rows {
	return sqlmock.NewRows(contactRowColumns)
}

func addContactRow(rows *sqlmock.Rows, id int64, first, last string, birth any) *sqlmock.Rows {
	return rows.AddRow(
		id, testUserID, first, last, birth,
		"1 Main St", "", "Springfield", "IL", "62701",
		first+"@example.com", "555-0100", "", int64(1), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	)
}

var categoryRowColumns = []string{"id", "user_id", "name", "version", "created_at"}
