package sqlquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"plain select", "SELECT * FROM users", true},
		{"lowercase select", "select id, name from users where id = 1", true},
		{"select with joins", "SELECT u.name FROM users u JOIN orders o ON o.user_id = u.id", true},
		{"leading whitespace", "   \n SELECT 1", true},
		{"insert", "INSERT INTO users VALUES (1)", false},
		{"update", "UPDATE users SET name = 'x'", false},
		{"delete", "DELETE FROM users", false},
		{"drop", "DROP TABLE users", false},
		{"stacked statement", "SELECT 1; DROP TABLE users", false},
		{"write hidden in comment removed", "-- DROP TABLE users\nSELECT 1", true},
		{"block comment removed", "/* UPDATE users */ SELECT 1", true},
		{"comment hiding select prefix", "/* x */ DELETE FROM users", false},
		{"not sql at all", "show me the data", false},
		{"empty", "", false},
		{"outfile", "SELECT * FROM users INTO OUTFILE '/tmp/x'", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateSelect(tt.query), "query: %s", tt.query)
		})
	}
}
