package scaffold

import (
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			"agent minimal",
			Request{Kind: KindAgent, RecipeID: "my-agent"},
			[]string{"recipes", "scaffold", "my-agent"},
		},
		{
			"team with id",
			Request{Kind: KindTeam, RecipeID: "my-team", TeamID: "my-team"},
			[]string{"recipes", "scaffold-team", "my-team", "--team-id", "my-team"},
		},
		{
			"agent full",
			Request{Kind: KindAgent, RecipeID: "r", AgentID: "a1", Name: "Agent One", ApplyConfig: true, Overwrite: true},
			[]string{"recipes", "scaffold", "r", "--overwrite", "--apply-config", "--agent-id", "a1", "--name", "Agent One"},
		},
		{
			"team overwrite only",
			Request{Kind: KindTeam, RecipeID: "t", Overwrite: true},
			[]string{"recipes", "scaffold-team", "t", "--overwrite"},
		},
		{
			"agent ignores teamId",
			Request{Kind: KindAgent, RecipeID: "r", TeamID: "stray"},
			[]string{"recipes", "scaffold", "r"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildArgs(tt.req); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgs(%+v) = %v, want %v", tt.req, got, tt.want)
			}
		})
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid agent", Request{Kind: KindAgent, RecipeID: "r"}, false},
		{"valid team with choice", Request{Kind: KindTeam, RecipeID: "r", CronInstallChoice: "yes"}, false},
		{"missing recipe", Request{Kind: KindAgent}, true},
		{"bad kind", Request{Kind: "swarm", RecipeID: "r"}, true},
		{"bad choice", Request{Kind: KindTeam, RecipeID: "r", CronInstallChoice: "maybe"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
