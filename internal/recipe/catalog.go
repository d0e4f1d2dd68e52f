// Package recipe lists, reconciles and edits the declarative templates the
// openclaw CLI scaffolds agents and teams from.
package recipe

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// ListItem is one catalog entry as reported by `openclaw recipes list`.
type ListItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`   // "agent" or "team"
	Source string `json:"source"` // "builtin" or "workspace"
}

// Reconcile collapses duplicate catalog entries sharing (kind, id) into one
// canonical entry. The CLI legitimately reports both a builtin definition
// and a workspace override for the same logical recipe; the workspace entry
// wins. Output preserves first-occurrence order of each key.
func Reconcile(items []ListItem) []ListItem {
	type key struct{ kind, id string }
	index := make(map[key]int, len(items))
	out := make([]ListItem, 0, len(items))

	for _, it := range items {
		k := key{it.Kind, it.ID}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, it)
			continue
		}
		if out[i].Source != "workspace" && it.Source == "workspace" {
			out[i] = it
		}
	}
	return out
}

// Catalog reads the recipe catalog through the CLI.
type Catalog struct {
	inv openclaw.Invoker
}

func NewCatalog(inv openclaw.Invoker) *Catalog {
	return &Catalog{inv: inv}
}

// List returns the reconciled catalog plus any stderr warnings the CLI
// emitted alongside a successful listing.
func (c *Catalog) List(ctx context.Context) ([]ListItem, string, error) {
	res := c.inv.Run(ctx, "recipes", "list")
	if !res.OK {
		return nil, res.Stderr, errs.Newf(errs.KindExternalTool, "recipes list failed: %s", strings.TrimSpace(res.Stderr))
	}
	var items []ListItem
	if err := json.Unmarshal([]byte(res.Stdout), &items); err != nil {
		return nil, res.Stderr, errs.Wrap(errs.KindExternalTool, "parse recipes list output", err)
	}
	return Reconcile(items), res.Stderr, nil
}

// FindByID returns the canonical entry for id, or nil when absent.
func (c *Catalog) FindByID(ctx context.Context, id string) (*ListItem, error) {
	items, _, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// WorkspacePath resolves the on-disk file of a workspace recipe. Builtin
// recipes live inside the CLI installation and have no editable path.
func WorkspacePath(baseWorkspace string, item ListItem) (string, error) {
	if item.Source != "workspace" {
		return "", errs.Newf(errs.KindForbidden, "recipe %s is %s and has no workspace path", item.ID, item.Source)
	}
	return filepath.Join(workspace.RecipesDir(baseWorkspace), item.ID+".md"), nil
}
