package db_conn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMigrationSeedsReferenceData(t *testing.T) {
	sqlb, err := MigrationsFS.ReadFile("migrations/0002_catalog.sql")
	require.NoError(t, err)
	script := string(sqlb)

	// свежая база должна содержать все справочники, на которые ссылаются
	// регистрация и заявки: города, районы, типы отходов и временные слоты
	assert.Contains(t, script, "INSERT INTO cities")
	assert.Contains(t, script, "INSERT INTO districts")
	assert.Contains(t, script, "INSERT INTO waste_types")
	assert.Contains(t, script, "INSERT INTO time_slots")

	// у Дуалы и Яунде именованные районы, у остальных городов — типовые
	assert.Contains(t, script, "Akwa")
	assert.Contains(t, script, "Bastos")
	assert.Contains(t, script, "Centre-ville")
}

func TestMigrationsDoNotManageTransactions(t *testing.T) {
	entries, err := MigrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	// каждый файл выполняется в транзакции Migrate, свои BEGIN/COMMIT запрещены
	for _, e := range entries {
		sqlb, err := MigrationsFS.ReadFile("migrations/" + e.Name())
		require.NoError(t, err)
		script := strings.ToUpper(string(sqlb))
		assert.NotContains(t, script, "BEGIN;", e.Name())
		assert.NotContains(t, script, "COMMIT;", e.Name())
	}
}
