// Package cron exposes the cron job surface of the openclaw CLI: triggering
// and toggling jobs, and listing the jobs a team recipe installed.
package cron

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/adhocore/gronx"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

const (
	ActionEnable  = "enable"
	ActionDisable = "disable"
	ActionRun     = "run"
)

// ActionResult reports the outcome of a job action.
type ActionResult struct {
	Action string          `json:"action"`
	ID     string          `json:"id"`
	Result openclaw.Result `json:"result"`
}

// Service wraps the openclaw cron subcommands.
type Service struct {
	inv openclaw.Invoker
}

func NewService(inv openclaw.Invoker) *Service {
	return &Service{inv: inv}
}

// Do runs a single job action. Enable and disable edit the job in place,
// run triggers it immediately.
func (s *Service) Do(ctx context.Context, id, action string) (*ActionResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.New(errs.KindValidation, "id is required")
	}

	var args []string
	switch action {
	case ActionRun:
		args = []string{"cron", "run", id, "--json"}
	case ActionEnable:
		args = []string{"cron", "edit", id, "--enable", "--json"}
	case ActionDisable:
		args = []string{"cron", "edit", id, "--disable", "--json"}
	default:
		return nil, errs.New(errs.KindValidation, "action must be enable|disable|run")
	}

	res := s.inv.Run(ctx, args...)
	return &ActionResult{Action: action, ID: id, Result: res}, nil
}

// mappingState is the on-disk schema of notes/cron-jobs.json, written by
// team recipes when they install cron jobs.
type mappingState struct {
	Version int                     `json:"version"`
	Entries map[string]mappingEntry `json:"entries"`
}

type mappingEntry struct {
	InstalledCronID string `json:"installedCronId"`
	Orphaned        bool   `json:"orphaned,omitempty"`
}

// InstalledReport lists the cron jobs a team's recipe installed, according to
// the team's mapping file.
type InstalledReport struct {
	TeamID      string           `json:"teamId"`
	TeamDir     string           `json:"teamDir"`
	MappingPath string           `json:"mappingPath"`
	JobCount    int              `json:"jobCount"`
	Jobs        []map[string]any `json:"jobs"`
}

// RecipeInstalled resolves the team's cron mapping file and filters the full
// cron job list down to the jobs it references. Jobs carrying a recognizable
// cron expression are annotated with their next run time.
func (s *Service) RecipeInstalled(ctx context.Context, teamID string) (*InstalledReport, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, errs.New(errs.KindValidation, "teamId is required")
	}

	base, err := openclaw.BaseWorkspace(ctx, s.inv)
	if err != nil {
		return nil, err
	}
	teamDir := workspace.TeamDir(base, teamID)
	mappingPath := workspace.CronMappingPath(teamDir)
	ids := installedIDs(mappingPath)

	res := s.inv.Run(ctx, "cron", "list", "--all", "--json")
	if !res.OK {
		return nil, errs.New(errs.KindExternalTool, strings.TrimSpace(res.Stderr))
	}
	var parsed struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &parsed); err != nil {
		return nil, errs.Wrap(errs.KindExternalTool, "cron list returned invalid JSON", err)
	}

	jobs := make([]map[string]any, 0)
	for _, job := range parsed.Jobs {
		id, _ := job["id"].(string)
		if !ids[id] {
			continue
		}
		annotateNextRun(job)
		jobs = append(jobs, job)
	}

	return &InstalledReport{
		TeamID:      teamID,
		TeamDir:     teamDir,
		MappingPath: mappingPath,
		JobCount:    len(jobs),
		Jobs:        jobs,
	}, nil
}

// installedIDs reads the mapping file and returns the cron ids of entries
// that are not orphaned. A missing or unreadable mapping yields an empty set.
func installedIDs(mappingPath string) map[string]bool {
	ids := make(map[string]bool)
	raw, err := os.ReadFile(mappingPath)
	if err != nil {
		return ids
	}
	var state mappingState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ids
	}
	for _, e := range state.Entries {
		if e.InstalledCronID != "" && !e.Orphaned {
			ids[e.InstalledCronID] = true
		}
	}
	return ids
}

// annotateNextRun sets nextRunAt on the job when its schedule carries a
// parseable cron expression. Jobs with unknown schedule shapes pass through
// unchanged.
func annotateNextRun(job map[string]any) {
	expr := scheduleExpr(job)
	if expr == "" || !gronx.New().IsValid(expr) {
		return
	}
	next, err := gronx.NextTick(expr, false)
	if err != nil {
		return
	}
	job["nextRunAt"] = next.UTC().Format(time.RFC3339)
}

func scheduleExpr(job map[string]any) string {
	switch s := job["schedule"].(type) {
	case string:
		return strings.TrimSpace(s)
	case map[string]any:
		if expr, ok := s["expr"].(string); ok {
			return strings.TrimSpace(expr)
		}
		if expr, ok := s["cron"].(string); ok {
			return strings.TrimSpace(expr)
		}
	}
	if expr, ok := job["cron"].(string); ok {
		return strings.TrimSpace(expr)
	}
	return ""
}
