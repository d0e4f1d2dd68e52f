package recipe

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
)

func TestReconcilePrefersWorkspace(t *testing.T) {
	in := []ListItem{
		{ID: "my-team", Kind: "team", Source: "builtin", Name: "My Team"},
		{ID: "my-team", Kind: "team", Source: "workspace", Name: "My Team (override)"},
	}
	out := Reconcile(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[0].Source != "workspace" {
		t.Errorf("expected workspace entry to win, got %s", out[0].Source)
	}
}

func TestReconcileKeepsFirstSeenOtherwise(t *testing.T) {
	in := []ListItem{
		{ID: "a", Kind: "agent", Source: "builtin", Name: "first"},
		{ID: "a", Kind: "agent", Source: "builtin", Name: "second"},
	}
	out := Reconcile(in)
	if len(out) != 1 || out[0].Name != "first" {
		t.Fatalf("expected first-seen entry to survive, got %+v", out)
	}
}

func TestReconcileOrderAndKindSeparation(t *testing.T) {
	in := []ListItem{
		{ID: "z", Kind: "team", Source: "builtin"},
		{ID: "a", Kind: "agent", Source: "builtin"},
		{ID: "z", Kind: "agent", Source: "builtin"},
		{ID: "a", Kind: "agent", Source: "workspace"},
	}
	out := Reconcile(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	// First-occurrence key order, not lexical order.
	wantOrder := []struct{ id, kind string }{{"z", "team"}, {"a", "agent"}, {"z", "agent"}}
	for i, w := range wantOrder {
		if out[i].ID != w.id || out[i].Kind != w.kind {
			t.Errorf("entry %d = (%s,%s), want (%s,%s)", i, out[i].ID, out[i].Kind, w.id, w.kind)
		}
	}
	if out[1].Source != "workspace" {
		t.Errorf("expected (a,agent) to be the workspace entry, got %s", out[1].Source)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	in := []ListItem{
		{ID: "a", Kind: "agent", Source: "builtin"},
		{ID: "a", Kind: "agent", Source: "workspace"},
		{ID: "b", Kind: "team", Source: "builtin"},
	}
	once := Reconcile(in)
	twice := Reconcile(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("reconcile not idempotent: %+v vs %+v", once, twice)
	}
}

type fakeInvoker struct {
	results map[string]openclaw.Result
	calls   [][]string
}

func (f *fakeInvoker) Run(_ context.Context, args ...string) openclaw.Result {
	f.calls = append(f.calls, args)
	if res, ok := f.results[strings.Join(args, " ")]; ok {
		return res
	}
	return openclaw.Result{OK: true}
}

func TestCatalogList(t *testing.T) {
	inv := &fakeInvoker{results: map[string]openclaw.Result{
		"recipes list": {OK: true, Stdout: `[
			{"id":"my-team","name":"My Team","kind":"team","source":"builtin"},
			{"id":"my-team","name":"My Team","kind":"team","source":"workspace"}
		]`, Stderr: "warning: legacy entry\n"},
	}}
	c := NewCatalog(inv)
	items, stderr, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Source != "workspace" {
		t.Errorf("unexpected reconciled list: %+v", items)
	}
	if !strings.Contains(stderr, "legacy entry") {
		t.Errorf("expected stderr warnings surfaced, got %q", stderr)
	}
}

func TestCatalogListBadJSON(t *testing.T) {
	inv := &fakeInvoker{results: map[string]openclaw.Result{
		"recipes list": {OK: true, Stdout: "not json"},
	}}
	if _, _, err := NewCatalog(inv).List(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCatalogFindByID(t *testing.T) {
	inv := &fakeInvoker{results: map[string]openclaw.Result{
		"recipes list": {OK: true, Stdout: `[{"id":"x","name":"X","kind":"agent","source":"builtin"}]`},
	}}
	c := NewCatalog(inv)

	item, err := c.FindByID(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item == nil || item.Name != "X" {
		t.Fatalf("unexpected item: %+v", item)
	}

	missing, err := c.FindByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing recipe, got %+v", missing)
	}
}

func TestWorkspacePath(t *testing.T) {
	p, err := WorkspacePath("/ws", ListItem{ID: "r1", Source: "workspace"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(p, "/ws/recipes/r1.md") {
		t.Errorf("unexpected path: %q", p)
	}
	if _, err := WorkspacePath("/ws", ListItem{ID: "r2", Source: "builtin"}); err == nil {
		t.Fatal("expected error for builtin recipe")
	}
}
