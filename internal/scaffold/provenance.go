package scaffold

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/recipe"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// ProvenanceRecord maps a team to the recipe it was scaffolded from. One
// JSON file per team, fully overwritten on every (re-)attach; only the
// latest attachment is retained.
type ProvenanceRecord struct {
	TeamID       string `json:"teamId"`
	RecipeID     string `json:"recipeId"`
	RecipeName   string `json:"recipeName,omitempty"`
	ScaffoldedAt string `json:"scaffoldedAt"`
	AttachedAt   string `json:"attachedAt"`
}

// Recorder persists team provenance. Recording is strictly best-effort:
// losing provenance is non-fatal, failing a scaffold over it would be worse.
type Recorder struct {
	inv     openclaw.Invoker
	catalog *recipe.Catalog
	now     func() time.Time
}

func NewRecorder(inv openclaw.Invoker, catalog *recipe.Catalog) *Recorder {
	return &Recorder{inv: inv, catalog: catalog, now: time.Now}
}

// Record writes the provenance file for a team. Any failure is discarded;
// callers treat this as fire and forget.
func (r *Recorder) Record(ctx context.Context, teamID, recipeID string) {
	if err := r.record(ctx, teamID, recipeID); err != nil {
		slog.Debug("team provenance not recorded", "team", teamID, "error", err)
	}
}

func (r *Recorder) record(ctx context.Context, teamID, recipeID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil
	}

	base, err := openclaw.BaseWorkspace(ctx, r.inv)
	if err != nil {
		return err
	}
	teamDir := workspace.TeamDir(base, teamID)

	now := r.now().UTC().Format(time.RFC3339)
	rec := ProvenanceRecord{
		TeamID:       teamID,
		RecipeID:     recipeID,
		RecipeName:   r.recipeName(ctx, recipeID),
		ScaffoldedAt: now,
		AttachedAt:   now,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(teamDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(workspace.TeamMetaPath(teamDir), append(data, '\n'), 0o644)
}

// recipeName looks up the display name; absence is fine.
func (r *Recorder) recipeName(ctx context.Context, recipeID string) string {
	item, err := r.catalog.FindByID(ctx, recipeID)
	if err != nil || item == nil {
		return ""
	}
	return strings.TrimSpace(item.Name)
}
