package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEasy-BookingService/pkg/simpletxmanager"
)

// recordingDriver фиксирует текст SQL запросов вместо их выполнения:
// позволяет проверить, какие подсказки блокировки попадают в запрос
// при разных режимах транзакций.
type recordingDriver struct {
	queries *[]string
}

func (d *recordingDriver) Open(string) (driver.Conn, error) {
	return &recordingConn{queries: d.queries}, nil
}

type recordingConn struct {
	queries *[]string
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) { return recordingTx{}, nil }

func (c *recordingConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return recordingTx{}, nil
}

func (c *recordingConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	*c.queries = append(*c.queries, query)
	return emptyRows{}, nil
}

type recordingTx struct{}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type emptyRows struct{}

func (emptyRows) Columns() []string         { return nil }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }

var recordedQueries []string

func init() {
	sql.Register("recording", &recordingDriver{queries: &recordedQueries})
}

func openRecordingDB(t *testing.T) *sql.DB {
	t.Helper()
	recordedQueries = nil

	db, err := sql.Open("recording", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Проверка доступности выполняется в read-only транзакции: запрос не
// должен содержать FOR UPDATE, иначе Postgres отклонит его с 25006.
func TestFindConflicting_ReadOnlyTxWithoutRowLock(t *testing.T) {
	db := openRecordingDB(t)
	repo := NewRepository(db)
	txm := simpletxmanager.NewTransactionManager(db)

	err := txm.DoReadOnly(context.Background(), func(ctx context.Context) error {
		_, err := repo.FindConflicting(ctx, "item-1", date(2024, 7, 1), date(2024, 7, 5))
		return err
	})
	require.NoError(t, err)

	require.NotEmpty(t, recordedQueries)
	for _, q := range recordedQueries {
		assert.NotContains(t, q, "FOR UPDATE")
	}
}

func TestFindConflictingForUpdate_LocksRowsInTx(t *testing.T) {
	db := openRecordingDB(t)
	repo := NewRepository(db)
	txm := simpletxmanager.NewTransactionManager(db)

	err := txm.DoSerializable(context.Background(), func(ctx context.Context) error {
		_, err := repo.FindConflictingForUpdate(ctx, "item-1", date(2024, 7, 1), date(2024, 7, 5))
		return err
	})
	require.NoError(t, err)

	require.NotEmpty(t, recordedQueries)
	locked := false
	for _, q := range recordedQueries {
		if strings.HasSuffix(q, "FOR UPDATE") {
			locked = true
		}
	}
	assert.True(t, locked, "conflict check inside the create transaction must lock rows")
}

func TestFindConflicting_OutsideTxWithoutRowLock(t *testing.T) {
	db := openRecordingDB(t)
	repo := NewRepository(db)

	_, err := repo.FindConflicting(context.Background(), "item-1", date(2024, 7, 1), date(2024, 7, 5))
	require.NoError(t, err)

	require.Len(t, recordedQueries, 1)
	assert.NotContains(t, recordedQueries[0], "FOR UPDATE")
}
