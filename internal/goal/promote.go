package goal

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JIGGAI/ClawKitchen/internal/config"
	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/slug"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// agentMessageTimeoutSecs is the CLI-side wait passed to `openclaw agent`.
const agentMessageTimeoutSecs = 60

// PingResult reports the lead notification attempt. A blocked or failed
// ping never fails the promotion itself.
type PingResult struct {
	Attempted bool   `json:"attempted"`
	OK        bool   `json:"ok"`
	Reason    string `json:"reason,omitempty"`
}

// PromoteResult is the outcome of a successful promotion.
type PromoteResult struct {
	Goal      Frontmatter `json:"goal"`
	InboxPath string      `json:"inboxPath"`
	Ping      PingResult  `json:"ping"`
}

// Promoter hands a goal off to the configured team: an inbox artifact with
// collision-safe naming, a status flip to active, and a permission-gated
// ping to the team lead.
type Promoter struct {
	inv   openclaw.Invoker
	store *Store
	cfg   config.PromotionConfig
	now   func() time.Time
}

func NewPromoter(inv openclaw.Invoker, store *Store, cfg config.PromotionConfig) *Promoter {
	return &Promoter{inv: inv, store: store, cfg: cfg, now: time.Now}
}

// TeamID names the team promotions are handed to.
func (p *Promoter) TeamID() string {
	return p.cfg.TeamID
}

// Promote runs the handoff. Only the inbox artifact and the goal status
// transition are required for success; the ping is reported, not enforced.
func (p *Promoter) Promote(ctx context.Context, goalID string) (*PromoteResult, error) {
	existing, err := p.store.Read(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.New(errs.KindNotFound, "Goal not found")
	}

	base, err := openclaw.BaseWorkspace(ctx, p.inv)
	if err != nil {
		return nil, err
	}
	inboxDir := workspace.InboxDir(workspace.TeamDir(base, p.cfg.TeamID))
	if err := os.MkdirAll(inboxDir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}

	received := p.now().UTC()
	body := p.inboxBody(existing, goalID, base, received)

	inboxPath, err := createInboxFile(inboxDir, inboxFilename(existing.Frontmatter.Title, goalID, received), received, body)
	if err != nil {
		return nil, err
	}

	fm := existing.Frontmatter
	fm.ID = goalID
	fm.Status = StatusActive
	updated, err := p.store.Write(ctx, fm, EnsureWorkflowInstructions(existing.Body))
	if err != nil {
		return nil, err
	}

	ping := p.tryLeadPing(ctx, inboxPath, updated.Frontmatter.Title, goalID)

	return &PromoteResult{
		Goal:      updated.Frontmatter,
		InboxPath: inboxPath,
		Ping:      ping,
	}, nil
}

func (p *Promoter) inboxBody(g *Goal, goalID, baseWorkspace string, received time.Time) string {
	snapshot := strings.TrimSpace(g.Body)
	if snapshot == "" {
		snapshot = "(empty)"
	}
	lines := []string{
		"# Inbox — " + p.cfg.TeamID,
		"",
		"Received: " + received.Format(time.RFC3339),
		"",
		"## Request",
		fmt.Sprintf("Goal: %s (%s)", g.Frontmatter.Title, goalID),
		"",
		"## Proposed work",
		"- Ticket: (lead to create during scoping)",
		"- Owner: lead",
		"",
		"## Links",
		"- Goal UI: /goals/" + url.PathEscape(goalID),
		"- Goal file: " + filepath.Join(workspace.GoalsDir(baseWorkspace), goalID+".md"),
		"",
		"## Goal body (snapshot)",
		snapshot,
		"",
	}
	return strings.Join(lines, "\n")
}

// inboxFilename derives a date-and-title name like
// 2025-09-01-1432-goal-ship-the-thing.md.
func inboxFilename(title, goalID string, received time.Time) string {
	part := slug.Make(title, 80)
	if part == "untitled" {
		part = goalID
	}
	return fmt.Sprintf("%s-%s-goal-%s.md", received.Format("2006-01-02"), received.Format("1504"), part)
}

// createInboxFile creates the artifact with an exclusive create so an
// existing file is never overwritten. On a name collision it retries
// exactly once with a compact timestamp suffix; any other error propagates.
func createInboxFile(dir, filename string, received time.Time, body string) (string, error) {
	path := filepath.Join(dir, filename)
	err := writeExclusive(path, body)
	if err == nil {
		return path, nil
	}
	if !os.IsExist(err) {
		return "", fmt.Errorf("write inbox file: %w", err)
	}

	stamp := received.Format("20060102T150405")
	alt := filepath.Join(dir, strings.TrimSuffix(filename, ".md")+"-"+stamp+".md")
	if err := writeExclusive(alt, body); err != nil {
		return "", fmt.Errorf("write inbox file: %w", err)
	}
	return alt, nil
}

func writeExclusive(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *Promoter) tryLeadPing(ctx context.Context, inboxPath, title, goalID string) PingResult {
	policy, err := openclaw.ReadA2APolicy(ctx, p.inv)
	if err != nil {
		return PingResult{Attempted: false, OK: false, Reason: errs.Message(err)}
	}
	if !policy.Permits(p.cfg.LeadAgentID) {
		reason := "tools.agentToAgent.enabled is false"
		if policy.Enabled {
			reason = fmt.Sprintf("agentToAgent.allow does not include %q or %q", "*", p.cfg.LeadAgentID)
		}
		return PingResult{Attempted: false, OK: false, Reason: reason}
	}

	msg := fmt.Sprintf("New goal promoted to %s inbox: %s (%s). Inbox file: %s",
		p.cfg.TeamID, title, goalID, inboxPath)

	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.PingTimeout)
	defer cancel()
	if err := openclaw.SendAgentMessage(pingCtx, p.inv, p.cfg.LeadAgentID, msg, agentMessageTimeoutSecs); err != nil {
		return PingResult{Attempted: true, OK: false, Reason: errs.Message(err)}
	}
	return PingResult{Attempted: true, OK: true}
}

const workflowInstructions = `## Workflow

- Scoping: the team lead reviews the inbox item and creates tickets.
- Updates: progress notes land back in this goal file.
- Done: flip status to done once all tickets close.`

// EnsureWorkflowInstructions appends the workflow block to a goal body
// unless it is already present, so repeated promotion never duplicates it.
func EnsureWorkflowInstructions(body string) string {
	if strings.Contains(body, "## Workflow") {
		return body
	}
	trimmed := strings.TrimRight(body, "\n")
	if trimmed == "" {
		return workflowInstructions + "\n"
	}
	return trimmed + "\n\n" + workflowInstructions + "\n"
}
