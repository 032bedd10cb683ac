package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder_ZoneScope(t *testing.T) {
	t.Parallel()

	query, args, err := Select("m.id", "m.zone").
		From("matches m").
		Join("competitions c", "c.id = m.competition_id").
		Where(Eq("m.competition_id", int64(4)), Or(Eq("m.zone", "Norte"), Eq("m.zone", "INTERZONAL")), NotNull("m.home_score")).
		OrderBy("m.match_date", "m.id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT m.id, m.zone FROM matches m JOIN competitions c ON c.id = m.competition_id WHERE m.competition_id = $1 AND (m.zone = $2 OR m.zone = $3) AND m.home_score IS NOT NULL ORDER BY m.match_date, m.id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "Norte" || args[2] != "INTERZONAL" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_DistinctAnyExpr(t *testing.T) {
	t.Parallel()

	ids := []int64{1, 2}
	query, args, err := SelectDistinct("zone").
		From("matches").
		Where(Any("id", ids), Expr("LOWER(event_kind) = ?", "goal"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT DISTINCT zone FROM matches WHERE id = ANY($1) AND LOWER(event_kind) = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "goal" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyOrMatchesNothing(t *testing.T) {
	t.Parallel()

	query, _, err := Select("id").From("matches").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM matches WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsertBuilder_Returning(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("teams").
		Columns("external_id", "name").
		Values(int64(77), "Club Atlético").
		Suffix("ON CONFLICT (external_id) DO NOTHING").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (external_id, name) VALUES ($1, $2) ON CONFLICT (external_id) DO NOTHING RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(77) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_SkipsOmitInsert(t *testing.T) {
	t.Parallel()

	type row struct {
		ID        int64     `db:"id,omitinsert"`
		Name      string    `db:"name"`
		Season    string    `db:"season"`
		CreatedAt time.Time `db:"-"`
		hidden    string
	}

	query, args, err := InsertModel("competitions", row{ID: 9, Name: "Liga", Season: "2025", hidden: "x"}).
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO competitions (name, season) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Liga" || args[1] != "2025" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModel("teams", 42).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("matches").
		Set("home_score", 2).
		Set("away_score", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(5))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET home_score = $1, away_score = $2, updated_at = NOW() WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != int64(5) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	t.Parallel()

	if _, _, err := Update("matches").Set("zone", "Sur").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
}
