// Package workspace encodes the on-disk layout conventions shared with the
// openclaw CLI: a base agent workspace and, for each team, a sibling
// directory named workspace-<teamId>.
package workspace

import (
	"path/filepath"
	"strings"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
)

// TeamDir resolves a team's workspace as a sibling of the base workspace.
func TeamDir(baseWorkspace, teamID string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(baseWorkspace)), "workspace-"+teamID)
}

// TeamMetaPath is the provenance file inside a team workspace.
func TeamMetaPath(teamDir string) string {
	return filepath.Join(teamDir, "team.json")
}

// InboxDir is where promoted goals land inside a team workspace.
func InboxDir(teamDir string) string {
	return filepath.Join(teamDir, "inbox")
}

// SkillsDir holds installed capability directories for an agent or team.
func SkillsDir(dir string) string {
	return filepath.Join(dir, "skills")
}

// GoalsDir holds goal documents under the base workspace.
func GoalsDir(baseWorkspace string) string {
	return filepath.Join(baseWorkspace, "notes", "goals")
}

// RecipesDir holds workspace recipe overrides under the base workspace.
func RecipesDir(baseWorkspace string) string {
	return filepath.Join(baseWorkspace, "recipes")
}

// CronMappingPath is the recipe-installed cron job mapping for a team.
func CronMappingPath(teamDir string) string {
	return filepath.Join(teamDir, "notes", "cron-jobs.json")
}

// SafeRelativeName validates a caller-supplied file name for pass-through
// file endpoints. Absolute paths and parent traversal are rejected.
func SafeRelativeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.New(errs.KindValidation, "name is required")
	}
	if filepath.IsAbs(name) {
		return "", errs.Newf(errs.KindValidation, "name must be relative: %s", name)
	}
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errs.Newf(errs.KindValidation, "name must not escape the workspace: %s", name)
	}
	return clean, nil
}
