package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d.Name)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName)
	assert.Equal(t, "sqlite3", d.GooseDialect)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg, _ := DialectFor(DialectPostgres)
	my, _ := DialectFor(DialectMySQL)
	q := "SELECT quantity FROM inventory WHERE location = ? AND upid = ? AND expiration = ?"

	assert.Equal(t, "SELECT quantity FROM inventory WHERE location = $1 AND upid = $2 AND expiration = $3", pg.Rebind(q))
	assert.Equal(t, q, my.Rebind(q))
}

func TestQuoteAndForUpdate(t *testing.T) {
	pg, _ := DialectFor(DialectPostgres)
	my, _ := DialectFor(DialectMySQL)
	lite, _ := DialectFor(DialectSQLite)

	assert.Equal(t, `"user"`, pg.Quote("user"))
	assert.Equal(t, "`user`", my.Quote("user"))
	assert.Equal(t, " FOR UPDATE", pg.ForUpdate())
	assert.Equal(t, "", lite.ForUpdate())
}

func TestIsUniqueViolation(t *testing.T) {
	pg, _ := DialectFor(DialectPostgres)

	assert.True(t, pg.IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, pg.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, pg.IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, pg.IsUniqueViolation(errors.New("other")))
	assert.False(t, pg.IsUniqueViolation(nil))
}

func TestNullDateScan(t *testing.T) {
	want := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	inputs := []any{
		"2026-10-14",
		[]byte("2026-10-14"),
		"2026-10-14 00:00:00",
		"2026-10-14T00:00:00Z",
		time.Date(2026, 10, 14, 0, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
	}
	for _, in := range inputs {
		var d NullDate
		require.NoError(t, d.Scan(in), "%v", in)
		assert.True(t, d.Valid)
		assert.True(t, want.Equal(d.Time), "%v -> %v", in, d.Time)
	}

	var d NullDate
	require.NoError(t, d.Scan(nil))
	assert.False(t, d.Valid)

	assert.Error(t, d.Scan("14/10/2026"))
	assert.Error(t, d.Scan(42))
}
