package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("BoolValue", func(t *testing.T) {
		if dialect.BoolValue(true) != "1" || dialect.BoolValue(false) != "0" {
			t.Error("BoolValue() should use integer literals for SQLite")
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM players WHERE player_id = ? AND score >= ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, should be unchanged", got)
		}
	})

	t.Run("ScoreUpsertQuery", func(t *testing.T) {
		query := dialect.ScoreUpsertQuery()
		if !strings.Contains(query, "ON CONFLICT") {
			t.Errorf("ScoreUpsertQuery() = %v, should use ON CONFLICT", query)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})

	t.Run("BoolValue", func(t *testing.T) {
		if dialect.BoolValue(true) != "TRUE" || dialect.BoolValue(false) != "FALSE" {
			t.Error("BoolValue() should use boolean literals for PostgreSQL")
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		got := dialect.RewriteQuery("INSERT INTO players (player_id, score) VALUES (?, ?)")
		want := "INSERT INTO players (player_id, score) VALUES ($1, $2)"
		if got != want {
			t.Errorf("RewriteQuery() = %v, want %v", got, want)
		}
	})

	t.Run("ScoreUpsertQuery", func(t *testing.T) {
		query := dialect.ScoreUpsertQuery()
		if !strings.Contains(query, "ON CONFLICT") {
			t.Errorf("ScoreUpsertQuery() = %v, should use ON CONFLICT", query)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want mysql", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM players WHERE player_id = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, should be unchanged", got)
		}
	})

	t.Run("ScoreUpsertQuery", func(t *testing.T) {
		query := dialect.ScoreUpsertQuery()
		if !strings.Contains(query, "ON DUPLICATE KEY UPDATE") {
			t.Errorf("ScoreUpsertQuery() = %v, should use ON DUPLICATE KEY UPDATE", query)
		}
	})
}
