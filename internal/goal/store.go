// Package goal stores planning documents as YAML-frontmattered Markdown
// files under the base workspace and promotes them into a team's inbox.
package goal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/recipe"
	"github.com/JIGGAI/ClawKitchen/internal/slug"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

// Valid goal statuses.
const (
	StatusPlanned = "planned"
	StatusActive  = "active"
	StatusDone    = "done"
)

// Frontmatter is the structured header of a goal document.
type Frontmatter struct {
	ID     string   `yaml:"id" json:"id"`
	Title  string   `yaml:"title" json:"title"`
	Status string   `yaml:"status" json:"status"`
	Tags   []string `yaml:"tags" json:"tags"`
	Teams  []string `yaml:"teams" json:"teams"`
}

// Goal is one parsed goal document.
type Goal struct {
	Frontmatter Frontmatter `json:"frontmatter"`
	Body        string      `json:"body"`
	Raw         string      `json:"raw"`
}

// Store reads and writes goal files. The directory is resolved through the
// CLI's configuration on every call; the CLI owns the workspace layout.
type Store struct {
	inv openclaw.Invoker
}

func NewStore(inv openclaw.Invoker) *Store {
	return &Store{inv: inv}
}

// Dir resolves the goals directory under the base workspace.
func (s *Store) Dir(ctx context.Context) (string, error) {
	base, err := openclaw.BaseWorkspace(ctx, s.inv)
	if err != nil {
		return "", err
	}
	return workspace.GoalsDir(base), nil
}

// Path returns the file a goal id maps to. The id is slugified so caller
// input can never escape the goals directory.
func (s *Store) Path(ctx context.Context, id string) (string, error) {
	dir, err := s.Dir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, slug.Make(id, 64)+".md"), nil
}

// Read loads a goal, or returns (nil, nil) when it does not exist.
func (s *Store) Read(ctx context.Context, id string) (*Goal, error) {
	path, err := s.Path(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read goal: %w", err)
	}
	return parseGoal(string(data))
}

func parseGoal(raw string) (*Goal, error) {
	header, body, err := recipe.SplitFrontmatter(raw)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "goal document malformed", err)
	}
	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "parse goal frontmatter", err)
	}
	return &Goal{Frontmatter: fm, Body: body, Raw: raw}, nil
}

// Write persists a goal, fully replacing any prior document. An empty
// status defaults to planned.
func (s *Store) Write(ctx context.Context, fm Frontmatter, body string) (*Goal, error) {
	fm.ID = slug.Make(fm.ID, 64)
	fm.Title = strings.TrimSpace(fm.Title)
	if fm.Title == "" {
		return nil, errs.New(errs.KindValidation, "title is required")
	}
	if fm.Status == "" {
		fm.Status = StatusPlanned
	}
	switch fm.Status {
	case StatusPlanned, StatusActive, StatusDone:
	default:
		return nil, errs.Newf(errs.KindValidation, "status must be planned|active|done (got %s)", fm.Status)
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	if fm.Teams == nil {
		fm.Teams = []string{}
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode goal frontmatter: %w", err)
	}
	raw := recipe.JoinFrontmatter(string(header), body)

	path, err := s.Path(ctx, fm.ID)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create goals dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return nil, fmt.Errorf("write goal: %w", err)
	}
	return &Goal{Frontmatter: fm, Body: body, Raw: raw}, nil
}

// Delete removes a goal file. The bool reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	path, err := s.Path(ctx, id)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete goal: %w", err)
	}
	return true, nil
}

// List returns the frontmatter of every goal, sorted by id. Unparseable
// files are skipped.
func (s *Store) List(ctx context.Context) ([]Frontmatter, error) {
	dir, err := s.Dir(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Frontmatter{}, nil
		}
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]Frontmatter, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		g, err := parseGoal(string(data))
		if err != nil {
			continue
		}
		out = append(out, g.Frontmatter)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ErrorStatus classifies a goal error message into an HTTP status, for
// errors that carry no kind of their own.
func ErrorStatus(msg string) int {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not found"):
		return http.StatusNotFound
	case strings.Contains(lower, "required"), strings.Contains(lower, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
