package helper_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// Deleting a hotel must take its rooms and bookings with it. The rooms FK
// already cascades; these assertions keep the booking FKs cascading too,
// otherwise a hotel with history can never be deleted.
func TestInitMigrationCascades(t *testing.T) {
	schema, err := os.ReadFile("../migrations/postgres/000001_init.up.sql")
	require.NoError(t, err)

	cascades := []struct {
		name    string
		pattern string
	}{
		{
			name:    "rooms follow their hotel",
			pattern: `hotel_id\s+UUID NOT NULL REFERENCES hotels \(id\) ON DELETE CASCADE,\s*\n\s*number`,
		},
		{
			name:    "bookings follow their hotel",
			pattern: `hotel_id\s+UUID NOT NULL REFERENCES hotels \(id\) ON DELETE CASCADE,\s*\n\s*room_id`,
		},
		{
			name:    "bookings follow their room",
			pattern: `room_id\s+UUID REFERENCES rooms \(id\) ON DELETE CASCADE`,
		},
	}

	for _, tc := range cascades {
		t.Run(tc.name, func(t *testing.T) {
			matched, err := regexp.Match(tc.pattern, schema)
			require.NoError(t, err)
			require.True(t, matched, "schema lost the cascade: %s", tc.pattern)
		})
	}
}
