package dbprofile

import "testing"

func TestRebindPositional(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		prefix string
		want   string
	}{
		{
			name:   "dollar",
			query:  "SELECT * FROM uri_defs WHERE api_id = ? AND site_id = ?",
			prefix: "$",
			want:   "SELECT * FROM uri_defs WHERE api_id = $1 AND site_id = $2",
		},
		{
			name:   "colon",
			query:  "UPDATE notes SET title = ? WHERE obj_id = ?",
			prefix: ":",
			want:   "UPDATE notes SET title = :1 WHERE obj_id = :2",
		},
		{
			name:   "question mark inside string literal",
			query:  "SELECT * FROM notes WHERE title = 'what?' AND obj_id = ?",
			prefix: "$",
			want:   "SELECT * FROM notes WHERE title = 'what?' AND obj_id = $1",
		},
		{
			name:   "question mark inside quoted identifier",
			query:  `SELECT "odd?col" FROM t WHERE id = ?`,
			prefix: "$",
			want:   `SELECT "odd?col" FROM t WHERE id = $1`,
		},
		{
			name:   "no placeholders",
			query:  "SELECT 1",
			prefix: "$",
			want:   "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RebindPositional(tt.query, tt.prefix); got != tt.want {
				t.Errorf("RebindPositional() = %q, want %q", got, tt.want)
			}
		})
	}
}
