package migrate

import (
	"reflect"
	"testing"
	"testing/fstest"

	"shorturl.local/migrations"
)

func TestListSQLFiles_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.sql":      {Data: []byte("SELECT 2;")},
		"001_a.SQL":      {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
		"nested/003.sql": {Data: []byte("SELECT 3;")},
	}

	got, err := listSQLFiles(fsys)
	if err != nil {
		t.Fatalf("listSQLFiles: %v", err)
	}
	want := []string{"001_a.SQL", "002_b.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files: got %v, want %v", got, want)
	}
}

func TestEmbeddedMigrations_ContainMappingsTable(t *testing.T) {
	names, err := listSQLFiles(migrations.FS)
	if err != nil {
		t.Fatalf("listSQLFiles: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}
	if names[0] != "001_url_mappings.sql" {
		t.Fatalf("first migration: got %q", names[0])
	}
}

func TestResolveFS_RequiresSource(t *testing.T) {
	if _, err := resolveFS(Options{}); err == nil {
		t.Fatal("expected error without Dir or FS")
	}
	if _, err := resolveFS(Options{Dir: "/definitely/not/here"}); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
