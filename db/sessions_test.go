package db

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"testing"
)

// shortRowsDriver serves one row with too few columns, the way a schema
// drift between DDL and SELECT * would surface at scan time.
type shortRowsDriver struct{}

func (shortRowsDriver) Open(string) (driver.Conn, error) { return shortRowsConn{}, nil }

type shortRowsConn struct{}

func (shortRowsConn) Prepare(string) (driver.Stmt, error) { return shortRowsStmt{}, nil }
func (shortRowsConn) Close() error                        { return nil }
func (shortRowsConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

type shortRowsStmt struct{}

func (shortRowsStmt) Close() error  { return nil }
func (shortRowsStmt) NumInput() int { return -1 }

func (shortRowsStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.ResultNoRows, nil
}

func (shortRowsStmt) Query([]driver.Value) (driver.Rows, error) {
	return &shortRows{}, nil
}

type shortRows struct {
	served bool
}

func (*shortRows) Columns() []string { return []string{"id"} }
func (*shortRows) Close() error      { return nil }

func (r *shortRows) Next(dest []driver.Value) error {
	if r.served {
		return io.EOF
	}
	r.served = true
	dest[0] = "session-1"
	return nil
}

func TestGetOpenScanFailureStaysDiagnosable(t *testing.T) {
	sql.Register("shortrows", shortRowsDriver{})

	dataBase, err := sql.Open("shortrows", "")
	if err != nil {
		t.Fatalf("open: %s", err)
	}
	defer dataBase.Close()

	store := NewSessionStore(dataBase)

	_, err = store.GetOpen("wallet-a")
	if err == nil {
		t.Fatal("scan against a short row succeeded")
	}

	if !strings.Contains(err.Error(), "scan session row") {
		t.Errorf("error lost the scan context: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "destination arguments") {
		t.Errorf("error lost the underlying sql detail: %q", err.Error())
	}
}
