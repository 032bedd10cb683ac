package app

import (
	"strings"
	"testing"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		disable bool
		want    string
	}{
		{
			name:    "appends flag",
			in:      "postgres://u:p@localhost:5432/league_sync?sslmode=disable",
			disable: true,
			want:    "postgres://u:p@localhost:5432/league_sync?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name:    "explicit value wins",
			in:      "postgres://u:p@localhost:5432/league_sync?disable_prepared_binary_result=no",
			disable: true,
			want:    "postgres://u:p@localhost:5432/league_sync?disable_prepared_binary_result=no",
		},
		{
			name:    "toggle off",
			in:      "postgres://u:p@localhost:5432/league_sync",
			disable: false,
			want:    "postgres://u:p@localhost:5432/league_sync",
		},
		{
			name:    "key value dsn untouched",
			in:      "host=localhost dbname=league_sync",
			disable: true,
			want:    "host=localhost dbname=league_sync",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeDBURL(tc.in, tc.disable); got != tc.want {
				t.Fatalf("normalizeDBURL()=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestDBNameFromURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://u:p@localhost:5432/league_sync?sslmode=disable": "league_sync",
		"host=localhost port=5432 dbname='stats' user=postgres":     "stats",
		"host=localhost": "",
	}
	for in, want := range cases {
		if got := dbNameFromURL(in); got != want {
			t.Fatalf("dbNameFromURL(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("\n SELECT id,\n\t name FROM teams \n")
	if got != "SELECT id, name FROM teams" {
		t.Fatalf("unexpected query: %q", got)
	}

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("x", 2*maxTracedQueryLength))
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got len=%d", len(long))
	}
}
