package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	assert.Equal(t,
		"postgres://postgres@localhost:5432/workouts",
		ConnString(NewDBPoolParams{DBHost: "localhost", DBPort: "5432", DBName: "workouts"}),
	)
	assert.Equal(t,
		"postgres://tracker:p%40ss%2Fword@db:6543/workouts",
		ConnString(NewDBPoolParams{
			DBHost:     "db",
			DBPort:     "6543",
			DBName:     "workouts",
			DBUser:     "tracker",
			DBPassword: "p@ss/word",
		}),
	)
}

func TestSchemaSQL(t *testing.T) {
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS workout",
		"CREATE TABLE IF NOT EXISTS workout_exercise",
		"CREATE TABLE IF NOT EXISTS workout_set",
		"ux_workout_one_active",
		"ux_workout_one_draft",
		"ck_workout_completed_not_paused",
		"DEFERRABLE INITIALLY DEFERRED",
		"ON DELETE CASCADE",
	} {
		assert.True(t, strings.Contains(SchemaSQL, want), "schema is missing %q", want)
	}
}
