package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaStatements(t *testing.T) {
	stmts := SchemaStatements()

	assert.Len(t, stmts, 6)
	for _, stmt := range stmts {
		assert.NotEmpty(t, stmt)
		assert.False(t, strings.HasSuffix(stmt, ";"))
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE IF NOT EXISTS personnel"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "CREATE TABLE x (", firstLine("CREATE TABLE x (\n  id INT\n)"))
	assert.Equal(t, "SELECT 1", firstLine("SELECT 1"))
}
