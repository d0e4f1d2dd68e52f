package openclaw

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
)

// AgentInfo is one entry of `openclaw agents list --json`.
type AgentInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Workspace string `json:"workspace,omitempty"`
}

// ListAgents returns the agents the CLI currently knows about.
func ListAgents(ctx context.Context, inv Invoker) ([]AgentInfo, error) {
	res := inv.Run(ctx, "agents", "list", "--json")
	if !res.OK {
		return nil, errs.Newf(errs.KindExternalTool, "agents list failed: %s", firstLine(res.Stderr))
	}
	var agents []AgentInfo
	if err := json.Unmarshal([]byte(res.Stdout), &agents); err != nil {
		return nil, errs.Wrap(errs.KindExternalTool, "parse agents list output", err)
	}
	return agents, nil
}

// DeleteAgent removes an agent through the CLI. The raw Result is returned
// alongside the error so handlers can surface stdout/stderr diagnostics.
func DeleteAgent(ctx context.Context, inv Invoker, agentID string) (Result, error) {
	res := inv.Run(ctx, "agents", "delete", agentID, "--force", "--json")
	if !res.OK {
		return res, errs.Newf(errs.KindExternalTool, "failed to delete agent: %s", agentID)
	}
	return res, nil
}

// SendAgentMessage delivers a message to an agent with a CLI-side timeout
// in seconds. Callers bound the overall wait with ctx.
func SendAgentMessage(ctx context.Context, inv Invoker, agentID, message string, timeoutSecs int) error {
	res := inv.Run(ctx, "agent",
		"--agent", agentID,
		"--message", message,
		"--timeout", strconv.Itoa(timeoutSecs),
		"--json")
	if !res.OK {
		return errs.Newf(errs.KindExternalTool, "agent message failed: %s", firstLine(res.Stderr))
	}
	return nil
}
