package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@db:5432/markeep?sslmode=disable", migrationURL("postgres://u:p@db:5432/markeep?sslmode=disable"))
	require.Equal(t, "pgx5://u:p@db/markeep", migrationURL("postgresql://u:p@db/markeep"))
	require.Equal(t, "pgx5://already", migrationURL("pgx5://already"))
}
