package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
)

func deleteFixture(t *testing.T, recipes string, agents string) (*Deleter, string) {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, "workspace")
	if err := os.MkdirAll(filepath.Join(base, "recipes"), 0o755); err != nil {
		t.Fatal(err)
	}

	inv := &fakeInvoker{results: map[string]openclaw.Result{
		"recipes list":                          {OK: true, Stdout: recipes},
		"config get agents.defaults.workspace": {OK: true, Stdout: base + "\n"},
		"agents list --json":                   {OK: true, Stdout: agents},
	}}
	return NewDeleter(inv, NewCatalog(inv)), base
}

func TestDeleteWorkspaceRecipe(t *testing.T) {
	d, base := deleteFixture(t,
		`[{"id":"helper","name":"Helper","kind":"agent","source":"workspace"}]`, `[]`)
	path := filepath.Join(base, "recipes", "helper.md")
	if err := os.WriteFile(path, []byte("---\nid: helper\n---\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := d.Delete(context.Background(), "helper")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Deleted != path {
		t.Errorf("deleted = %s, want %s", out.Deleted, path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("recipe file still exists")
	}
}

func TestDeleteBuiltinForbidden(t *testing.T) {
	d, _ := deleteFixture(t,
		`[{"id":"core","name":"Core","kind":"agent","source":"builtin"}]`, `[]`)

	_, err := d.Delete(context.Background(), "core")
	if errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestDeleteUnknownNotFound(t *testing.T) {
	d, _ := deleteFixture(t, `[]`, `[]`)

	_, err := d.Delete(context.Background(), "ghost")
	if errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteInstalledTeamConflict(t *testing.T) {
	d, base := deleteFixture(t,
		`[{"id":"alpha","name":"Alpha","kind":"team","source":"workspace"}]`, `[]`)
	if err := os.WriteFile(filepath.Join(base, "recipes", "alpha.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// installed marker: the team workspace directory exists
	if err := os.MkdirAll(filepath.Join(filepath.Dir(base), "workspace-alpha"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := d.Delete(context.Background(), "alpha")
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if out == nil || !out.HasWorkspace {
		t.Errorf("expected hasWorkspace detail, got %+v", out)
	}
}

func TestDeleteTeamWithLiveAgentsConflict(t *testing.T) {
	d, base := deleteFixture(t,
		`[{"id":"alpha","name":"Alpha","kind":"team","source":"workspace"}]`,
		`[{"id":"alpha-lead"},{"id":"other"}]`)
	if err := os.WriteFile(filepath.Join(base, "recipes", "alpha.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := d.Delete(context.Background(), "alpha")
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if out == nil || !out.HasAgents {
		t.Errorf("expected hasAgents detail, got %+v", out)
	}
}

func TestDeleteUninstalledTeam(t *testing.T) {
	d, base := deleteFixture(t,
		`[{"id":"alpha","name":"Alpha","kind":"team","source":"workspace"}]`,
		`[{"id":"unrelated-lead"}]`)
	path := filepath.Join(base, "recipes", "alpha.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := d.Delete(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Deleted != path {
		t.Errorf("deleted = %s", out.Deleted)
	}
}
