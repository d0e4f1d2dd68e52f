package openclaw

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
)

// Well-known openclaw configuration paths.
const (
	PathCronInstallation = "plugins.entries.recipes.config.cronInstallation"
	PathBaseWorkspace    = "agents.defaults.workspace"
	pathA2AEnabled       = "tools.agentToAgent.enabled"
	pathA2AAllow         = "tools.agentToAgent.allow"
)

// ConfigGet reads one configuration value by dotted path. The returned
// string is trimmed; an empty string means the key is unset.
func ConfigGet(ctx context.Context, inv Invoker, path string) (string, error) {
	res := inv.Run(ctx, "config", "get", path)
	if !res.OK {
		return "", errs.Newf(errs.KindExternalTool, "config get %s failed: %s", path, firstLine(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ConfigSet writes one configuration value by dotted path.
func ConfigSet(ctx context.Context, inv Invoker, path, value string) error {
	res := inv.Run(ctx, "config", "set", path, value)
	if !res.OK {
		return errs.Newf(errs.KindExternalTool, "config set %s failed: %s", path, firstLine(res.Stderr))
	}
	return nil
}

// BaseWorkspace resolves the default agent workspace directory. Every
// team workspace is a sibling of this directory.
func BaseWorkspace(ctx context.Context, inv Invoker) (string, error) {
	ws, err := ConfigGet(ctx, inv, PathBaseWorkspace)
	if err != nil {
		return "", err
	}
	if ws == "" {
		return "", errs.New(errs.KindInternal, "agents.defaults.workspace is not set")
	}
	return ws, nil
}

// A2APolicy is the agent-to-agent messaging permission read from openclaw
// configuration.
type A2APolicy struct {
	Enabled bool
	Allow   []string
}

// Permits reports whether the policy allows messaging the given agent,
// either by exact id or the "*" wildcard.
func (p A2APolicy) Permits(agentID string) bool {
	if !p.Enabled {
		return false
	}
	for _, a := range p.Allow {
		if a == "*" || a == agentID {
			return true
		}
	}
	return false
}

// ReadA2APolicy loads the messaging policy. Unset keys read as disabled
// and an empty allow list.
func ReadA2APolicy(ctx context.Context, inv Invoker) (A2APolicy, error) {
	enabled, err := ConfigGet(ctx, inv, pathA2AEnabled)
	if err != nil {
		return A2APolicy{}, err
	}
	p := A2APolicy{Enabled: enabled == "true"}

	res := inv.Run(ctx, "config", "get", pathA2AAllow, "--json")
	if !res.OK {
		return A2APolicy{}, errs.Newf(errs.KindExternalTool, "config get %s failed: %s", pathA2AAllow, firstLine(res.Stderr))
	}
	raw := strings.TrimSpace(res.Stdout)
	if raw == "" || raw == "null" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p.Allow); err != nil {
		return A2APolicy{}, errs.Wrap(errs.KindExternalTool, "parse agentToAgent.allow", err)
	}
	return p, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "(no output)"
	}
	return s
}
