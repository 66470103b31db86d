package ops

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/sf/sftest"
)

// setupTestDB creates a temporary catalog for testing.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, baseDir
}

// writeFixture builds a synthetic .sf file containing the given
// function sources and writes it under dir.
func writeFixture(t *testing.T, dir, name string, srcs ...string) string {
	t.Helper()
	subObjects := make([][]byte, len(srcs))
	for i, src := range srcs {
		subObjects[i] = sftest.FunctionSubObject(src)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, sftest.Container(subObjects...), 0600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

const (
	addSrc  = "    ∇ R←ADD A;B\n[1]   B←1\n[2]   R←A+B\n    ∇\n"
	iotaSrc = "    ∇ R←IOTA N\n[1]   ⎕IO←1\n[2]   R←⍳N\n    ∇\n"
)

func testCfg() *config.Config {
	return config.DefaultConfig()
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, def, max, want int
	}{
		{0, 20, 100, 20},
		{-5, 20, 100, 20},
		{50, 20, 100, 50},
		{500, 20, 100, 100},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.def, tt.max); got != tt.want {
			t.Errorf("clampLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.def, tt.max, got, tt.want)
		}
	}
}

func TestNewULID_Unique(t *testing.T) {
	a, b := newULID(), newULID()
	if a == b {
		t.Errorf("consecutive ULIDs collided: %s", a)
	}
	if len(a) != 26 {
		t.Errorf("ULID length = %d, want 26", len(a))
	}
}
