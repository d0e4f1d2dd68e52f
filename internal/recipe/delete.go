package recipe

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// DeleteOutcome describes a blocked or completed recipe deletion.
type DeleteOutcome struct {
	Deleted      string `json:"deleted,omitempty"`
	HasWorkspace bool   `json:"hasWorkspace,omitempty"`
	HasAgents    bool   `json:"hasAgents,omitempty"`
	TeamDir      string `json:"teamDir,omitempty"`
}

// Deleter removes workspace recipe files, refusing anything that is builtin,
// outside the workspace recipes directory, or still backing an installed team.
type Deleter struct {
	inv     openclaw.Invoker
	catalog *Catalog
}

func NewDeleter(inv openclaw.Invoker, catalog *Catalog) *Deleter {
	return &Deleter{inv: inv, catalog: catalog}
}

func (d *Deleter) Delete(ctx context.Context, id string) (*DeleteOutcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.New(errs.KindValidation, "id is required")
	}

	item, err := d.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.Newf(errs.KindNotFound, "Recipe not found: %s", id)
	}
	if item.Source == "builtin" {
		return nil, errs.Newf(errs.KindForbidden, "Recipe %s is builtin and cannot be deleted", id)
	}

	base, err := openclaw.BaseWorkspace(ctx, d.inv)
	if err != nil {
		return nil, err
	}

	path, err := WorkspacePath(base, *item)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "resolve recipe path", err)
	}
	allowedDir, err := filepath.Abs(workspace.RecipesDir(base))
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "resolve recipes dir", err)
	}
	if !strings.HasPrefix(resolved, allowedDir+string(filepath.Separator)) {
		return nil, errs.Newf(errs.KindForbidden, "Refusing to delete non-workspace recipe path: %s", resolved)
	}

	kind := item.Kind
	if kind == "" {
		kind = "team"
	}
	if kind == "team" {
		outcome, installed := d.teamInstalled(ctx, base, id)
		if installed {
			return outcome, errs.Newf(errs.KindConflict,
				"Team appears installed for %s. Remove the team first, then delete the recipe.", id)
		}
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return nil, errs.Wrap(errs.KindInternal, "delete recipe file", err)
	}
	return &DeleteOutcome{Deleted: resolved}, nil
}

// teamInstalled reports whether a team scaffolded from this recipe still
// exists, either as a workspace directory or as agents with the team prefix.
func (d *Deleter) teamInstalled(ctx context.Context, base, teamID string) (*DeleteOutcome, bool) {
	teamDir := workspace.TeamDir(base, teamID)
	hasWorkspace := false
	if _, err := os.Stat(teamDir); err == nil {
		hasWorkspace = true
	}

	hasAgents := false
	if agents, err := openclaw.ListAgents(ctx, d.inv); err == nil {
		for _, a := range agents {
			if strings.HasPrefix(a.ID, teamID+"-") {
				hasAgents = true
				break
			}
		}
	}

	outcome := &DeleteOutcome{HasWorkspace: hasWorkspace, HasAgents: hasAgents, TeamDir: teamDir}
	return outcome, hasWorkspace || hasAgents
}
