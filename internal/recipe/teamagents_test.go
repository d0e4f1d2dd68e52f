package recipe

import (
	"strings"
	"testing"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  lead  ", "lead", false},
		{"qa-lead", "qa-lead", false},
		{"", "", true},
		{"bad!", "", true},
		{"-leading", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeRole(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeRole(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeRole(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const teamRecipe = `---
id: my-team
kind: team
agents:
  - role: lead
    name: Lead
---
# My Team
`

func TestEditTeamAgentsAdd(t *testing.T) {
	doc, agents, err := EditTeamAgents(teamRecipe, "add", "qa", "QA Agent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
	// Sorted by role: lead before qa.
	if entryRole(agents[0]) != "lead" || entryRole(agents[1]) != "qa" {
		t.Errorf("unexpected role order: %v, %v", agents[0], agents[1])
	}
	if !strings.Contains(doc, "role: qa") {
		t.Errorf("edited doc missing new role:\n%s", doc)
	}
	if !strings.HasSuffix(doc, "# My Team\n") {
		t.Errorf("body not preserved:\n%s", doc)
	}
}

func TestEditTeamAgentsUpdateExisting(t *testing.T) {
	_, agents, err := EditTeamAgents(teamRecipe, "add", "lead", "New Lead Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected update in place, got %d agents", len(agents))
	}
	if agents[0]["name"] != "New Lead Name" {
		t.Errorf("expected renamed lead, got %v", agents[0])
	}
}

func TestEditTeamAgentsRemove(t *testing.T) {
	_, agents, err := EditTeamAgents(teamRecipe, "remove", "lead", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 0 {
		t.Errorf("expected empty agent list, got %v", agents)
	}
}

func TestEditTeamAgentsRejectsNonTeam(t *testing.T) {
	doc := "---\nkind: agent\n---\nbody"
	if _, _, err := EditTeamAgents(doc, "add", "lead", ""); err == nil {
		t.Fatal("expected error for non-team recipe")
	}
}

func TestEditTeamAgentsRejectsBadOp(t *testing.T) {
	if _, _, err := EditTeamAgents(teamRecipe, "rename", "lead", ""); err == nil {
		t.Fatal("expected error for unknown op")
	}
}
