package recipe

import (
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
)

var rolePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{0,62}$`)

// NormalizeRole trims and validates an agent role name for team recipes.
func NormalizeRole(role string) (string, error) {
	r := strings.TrimSpace(role)
	if r == "" {
		return "", errs.New(errs.KindValidation, "role is required")
	}
	if !rolePattern.MatchString(r) {
		return "", errs.New(errs.KindValidation, "role must be alphanumeric/dash")
	}
	return r, nil
}

// EditTeamAgents adds, updates or removes an agent role in a team recipe
// document, preserving the rest of the frontmatter and the body. op is
// "add" or "remove"; for "add" an existing entry with the same role is
// updated in place and name overrides the display name when non-empty.
// The resulting agents list is kept sorted by role.
func EditTeamAgents(doc, op, role, name string) (string, []map[string]any, error) {
	header, body, err := SplitFrontmatter(doc)
	if err != nil {
		return "", nil, errs.Wrap(errs.KindValidation, err.Error(), err)
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return "", nil, errs.Wrap(errs.KindValidation, "parse recipe frontmatter", err)
	}
	if fm == nil {
		fm = map[string]any{}
	}

	if kind, _ := fm["kind"].(string); kind != "" && kind != "team" {
		return "", nil, errs.Newf(errs.KindValidation, "recipe kind must be team (got %s)", kind)
	}

	agents := agentEntries(fm["agents"])

	switch op {
	case "remove":
		kept := agents[:0]
		for _, a := range agents {
			if entryRole(a) != role {
				kept = append(kept, a)
			}
		}
		agents = kept
	case "add":
		next := map[string]any{}
		idx := -1
		for i, a := range agents {
			if entryRole(a) == role {
				for k, v := range a {
					next[k] = v
				}
				idx = i
				break
			}
		}
		next["role"] = role
		if name != "" {
			next["name"] = name
		}
		if idx == -1 {
			agents = append(agents, next)
		} else {
			agents[idx] = next
		}
	default:
		return "", nil, errs.New(errs.KindValidation, "op must be add|remove")
	}

	sort.Slice(agents, func(i, j int) bool {
		return entryRole(agents[i]) < entryRole(agents[j])
	})

	fm["agents"] = agents
	nextHeader, err := yaml.Marshal(fm)
	if err != nil {
		return "", nil, errs.Wrap(errs.KindInternal, "encode recipe frontmatter", err)
	}

	return JoinFrontmatter(string(nextHeader), body), agents, nil
}

func agentEntries(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func entryRole(m map[string]any) string {
	r, _ := m["role"].(string)
	return r
}
