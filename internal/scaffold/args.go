// Package scaffold turns recipes into running agents and teams by driving
// the openclaw CLI, wrapping each invocation in a temporary configuration
// override so the CLI never blocks on an interactive prompt.
package scaffold

import (
	"github.com/JIGGAI/ClawKitchen/internal/errs"
)

// Kind discriminates what a recipe is scaffolded into.
type Kind string

const (
	KindAgent Kind = "agent"
	KindTeam  Kind = "team"
)

// Request describes one scaffold invocation. AgentID and Name apply to
// agent requests only, TeamID to team requests only.
type Request struct {
	Kind        Kind   `json:"kind"`
	RecipeID    string `json:"recipeId"`
	AgentID     string `json:"agentId,omitempty"`
	Name        string `json:"name,omitempty"`
	TeamID      string `json:"teamId,omitempty"`
	ApplyConfig bool   `json:"applyConfig,omitempty"`
	Overwrite   bool   `json:"overwrite,omitempty"`

	// CronInstallChoice answers the CLI's cron-installation prompt
	// non-interactively: "yes", "no", or empty to leave config untouched.
	CronInstallChoice string `json:"cronInstallChoice,omitempty"`
}

// Validate checks the request before any side effect is attempted.
func (r Request) Validate() error {
	if r.Kind != KindAgent && r.Kind != KindTeam {
		return errs.New(errs.KindValidation, "kind must be agent|team")
	}
	if r.RecipeID == "" {
		return errs.New(errs.KindValidation, "recipeId is required")
	}
	switch r.CronInstallChoice {
	case "", "yes", "no":
	default:
		return errs.New(errs.KindValidation, "cronInstallChoice must be yes|no")
	}
	return nil
}

// BuildArgs maps a request to the exact argument vector the CLI expects.
// Ordering is significant: the CLI parses positional and flag order.
func BuildArgs(r Request) []string {
	verb := "scaffold"
	if r.Kind == KindTeam {
		verb = "scaffold-team"
	}
	args := []string{"recipes", verb, r.RecipeID}
	if r.Overwrite {
		args = append(args, "--overwrite")
	}
	if r.ApplyConfig {
		args = append(args, "--apply-config")
	}
	if r.Kind == KindAgent {
		if r.AgentID != "" {
			args = append(args, "--agent-id", r.AgentID)
		}
		if r.Name != "" {
			args = append(args, "--name", r.Name)
		}
	} else if r.TeamID != "" {
		args = append(args, "--team-id", r.TeamID)
	}
	return args
}
