// Package skills lists and installs skills for agents and teams. Skills live
// as directories under a workspace's skills/ dir and are installed through
// the openclaw recipe tooling.
package skills

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// Listing names the skill directories found under a workspace.
type Listing struct {
	Workspace string   `json:"workspace,omitempty"`
	SkillsDir string   `json:"skillsDir"`
	Skills    []string `json:"skills"`
	Note      string   `json:"note,omitempty"`
}

type Service struct {
	inv openclaw.Invoker
}

func NewService(inv openclaw.Invoker) *Service {
	return &Service{inv: inv}
}

// ForAgent lists the skills installed in an agent's workspace. A missing
// skills directory is reported as an empty listing with a note, not an error.
func (s *Service) ForAgent(ctx context.Context, agentID string) (*Listing, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, errs.New(errs.KindValidation, "agentId is required")
	}
	ws, err := s.agentWorkspace(ctx, agentID)
	if err != nil {
		return nil, err
	}
	l := listDir(workspace.SkillsDir(ws))
	l.Workspace = ws
	return l, nil
}

// ForTeam lists the skills in a team's workspace directory.
func (s *Service) ForTeam(ctx context.Context, teamID string) (*Listing, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, errs.New(errs.KindValidation, "teamId is required")
	}
	base, err := openclaw.BaseWorkspace(ctx, s.inv)
	if err != nil {
		return nil, err
	}
	return listDir(workspace.SkillsDir(workspace.TeamDir(base, teamID))), nil
}

// Install installs a skill into an agent's workspace via the recipe tooling.
func (s *Service) Install(ctx context.Context, agentID, skill string) (openclaw.Result, error) {
	agentID = strings.TrimSpace(agentID)
	skill = strings.TrimSpace(skill)
	if agentID == "" {
		return openclaw.Result{}, errs.New(errs.KindValidation, "agentId is required")
	}
	if skill == "" {
		return openclaw.Result{}, errs.New(errs.KindValidation, "skill is required")
	}

	res := s.inv.Run(ctx, "recipes", "install-skill", skill, "--agent-id", agentID, "--yes")
	if !res.OK {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = "skill installation failed"
		}
		return res, errs.New(errs.KindExternalTool, msg)
	}
	return res, nil
}

// agentWorkspace resolves an agent's workspace from the agent list, falling
// back to the default workspace when the agent does not declare one.
func (s *Service) agentWorkspace(ctx context.Context, agentID string) (string, error) {
	agents, err := openclaw.ListAgents(ctx, s.inv)
	if err == nil {
		for _, a := range agents {
			if a.ID == agentID && strings.TrimSpace(a.Workspace) != "" {
				return strings.TrimSpace(a.Workspace), nil
			}
		}
	}
	return openclaw.BaseWorkspace(ctx, s.inv)
}

func listDir(skillsDir string) *Listing {
	l := &Listing{SkillsDir: skillsDir, Skills: []string{}}
	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		l.Note = err.Error()
		return l
	}
	for _, e := range entries {
		if e.IsDir() {
			l.Skills = append(l.Skills, e.Name())
		}
	}
	sort.Strings(l.Skills)
	return l
}
