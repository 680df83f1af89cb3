package migration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir_SortsByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V2__add_candidates.sql", "CREATE TABLE candidates (id UUID);")
	writeMigration(t, dir, "V10__add_preferences.sql", "CREATE TABLE preferences (id UUID);")
	writeMigration(t, dir, "V1__init.sql", "CREATE TABLE job_openings (id UUID);")
	writeMigration(t, dir, "notes.txt", "not a migration")

	migs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	for i, want := range []int64{1, 2, 10} {
		if migs[i].Version != want {
			t.Fatalf("position %d: version %d, want %d", i, migs[i].Version, want)
		}
	}
	if migs[2].Name != "add_preferences" {
		t.Fatalf("unexpected name: %q", migs[2].Name)
	}
}

func TestLoadDir_DuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__init.sql", "SELECT 1;")
	writeMigration(t, dir, "V1__init_again.sql", "SELECT 2;")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestLoadDir_EmptyFileRejected(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__init.sql", "   \n")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected empty file error")
	}
}

func TestLoadDir_MissingDir(t *testing.T) {
	migs, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations, got %d", len(migs))
	}
}

func TestLoadDir_ChecksumTracksContent(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeMigration(t, dirA, "V1__init.sql", "CREATE TABLE a (id UUID);")
	writeMigration(t, dirB, "V1__init.sql", "CREATE TABLE b (id UUID);")

	a, err := LoadDir(dirA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadDir(dirB)
	if err != nil {
		t.Fatal(err)
	}
	if a[0].Checksum == b[0].Checksum {
		t.Fatal("different SQL produced the same checksum")
	}
}
