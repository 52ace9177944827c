package repository

import (
	"strings"
	"testing"
)

func TestJSONTextExprByDialectSQLite(t *testing.T) {
	got := jsonTextExprByDialect("sqlite", "name_json", "es")
	want := "json_extract(name_json, '$.\"es\"')"
	if got != want {
		t.Fatalf("sqlite json expr mismatch, want %s got %s", want, got)
	}
}

func TestJSONTextExprByDialectPostgres(t *testing.T) {
	got := jsonTextExprByDialect("postgres", "name_json", "es")
	want := "(name_json::jsonb ->> 'es')"
	if got != want {
		t.Fatalf("postgres json expr mismatch, want %s got %s", want, got)
	}
}

func TestBuildLocalizedLikeCondition(t *testing.T) {
	condition, argCount := buildLocalizedLikeCondition(nil, []string{"slug"}, []string{"name_json", "description_json"})
	if argCount != 5 {
		t.Fatalf("arg count want 5 got %d", argCount)
	}
	if !strings.Contains(condition, "slug LIKE ?") {
		t.Fatalf("condition should contain slug LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "json_extract(name_json, '$.\"es\"') LIKE ?") {
		t.Fatalf("condition should contain name es LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "json_extract(description_json, '$.\"en\"') LIKE ?") {
		t.Fatalf("condition should contain description en LIKE, got %s", condition)
	}

	pg, _ := buildLocalizedLikeConditionByDialect("postgres", nil, []string{"name_json"})
	if !strings.Contains(pg, "ILIKE") {
		t.Fatalf("postgres should use ILIKE, got %s", pg)
	}
}

func TestEscapeLikeKeyword(t *testing.T) {
	if got := escapeLikeKeyword(" 50%_off "); got != `%50\%\_off%` {
		t.Fatalf("unexpected escaped keyword %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
