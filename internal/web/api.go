package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/JIGGAI/ClawKitchen/internal/errs"
	"github.com/JIGGAI/ClawKitchen/internal/goal"
	"github.com/JIGGAI/ClawKitchen/internal/history"
	"github.com/JIGGAI/ClawKitchen/internal/natsbus"
	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
	"github.com/JIGGAI/ClawKitchen/internal/recipe"
	"github.com/JIGGAI/ClawKitchen/internal/scaffold"
	"github.com/JIGGAI/ClawKitchen/internal/workspace"
)

func (s *Server) registerAPI(mux *http.ServeMux) {
	// Recipes
	mux.HandleFunc("GET /api/recipes", s.listRecipes)
	mux.HandleFunc("POST /api/recipes/delete", s.deleteRecipe)
	mux.HandleFunc("POST /api/recipes/team-agents", s.editTeamAgents)

	// Scaffolding
	mux.HandleFunc("POST /api/scaffold", s.runScaffold)

	// Goals
	mux.HandleFunc("GET /api/goals", s.listGoals)
	mux.HandleFunc("GET /api/goals/{id}", s.getGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.putGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.deleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/promote", s.promoteGoal)

	// Teams
	mux.HandleFunc("GET /api/teams/meta", s.getTeamMeta)
	mux.HandleFunc("POST /api/teams/meta", s.setTeamMeta)
	mux.HandleFunc("GET /api/teams/file", s.getTeamFile)
	mux.HandleFunc("PUT /api/teams/file", s.putTeamFile)
	mux.HandleFunc("GET /api/teams/skills", s.listTeamSkills)

	// Agents
	mux.HandleFunc("GET /api/agents", s.listAgents)
	mux.HandleFunc("DELETE /api/agents/{id}", s.deleteAgent)
	mux.HandleFunc("GET /api/agents/file", s.getAgentFile)
	mux.HandleFunc("PUT /api/agents/file", s.putAgentFile)
	mux.HandleFunc("GET /api/agents/skills", s.listAgentSkills)
	mux.HandleFunc("POST /api/agents/skills/install", s.installAgentSkill)

	// Cron
	mux.HandleFunc("POST /api/cron/job", s.cronJobAction)
	mux.HandleFunc("GET /api/cron/recipe-installed", s.cronRecipeInstalled)

	// System
	mux.HandleFunc("GET /api/history", s.getHistory)
	mux.HandleFunc("GET /api/status", s.getStatus)
}

// --- recipes ---

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	items, stderr, err := s.catalog.List(r.Context())
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{"recipes": items, "stderr": stderr})
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := s.deleter.Delete(r.Context(), body.ID)
	if err != nil {
		status := errs.HTTPStatus(err)
		payload := map[string]any{"ok": false, "error": errs.Message(err)}
		if out != nil {
			payload["details"] = out
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
		return
	}

	s.publishEvent(natsbus.TopicRecipeDeleted, body.ID, map[string]any{"path": out.Deleted})
	jsonResponse(w, map[string]any{"ok": true, "deleted": out.Deleted})
}

func (s *Server) editTeamAgents(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RecipeID string `json:"recipeId"`
		Op       string `json:"op"`
		Role     string `json:"role"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	recipeID := strings.TrimSpace(body.RecipeID)
	if recipeID == "" {
		jsonError(w, "recipeId is required", http.StatusBadRequest)
		return
	}
	if body.Op != "add" && body.Op != "remove" {
		jsonError(w, "op must be add|remove", http.StatusBadRequest)
		return
	}
	role, err := recipe.NormalizeRole(body.Role)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}

	base, err := openclaw.BaseWorkspace(r.Context(), s.inv)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	filePath := filepath.Join(workspace.RecipesDir(base), recipeID+".md")
	raw, err := os.ReadFile(filePath)
	if err != nil {
		jsonError(w, "recipe file not found: "+recipeID, http.StatusNotFound)
		return
	}

	next, agents, err := recipe.EditTeamAgents(string(raw), body.Op, role, body.Name)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	if err := os.WriteFile(filePath, []byte(next), 0o644); err != nil {
		jsonError(w, "write recipe file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]any{
		"ok":       true,
		"recipeId": recipeID,
		"filePath": filePath,
		"agents":   agents,
		"content":  next,
	})
}

// --- scaffold ---

func (s *Server) runScaffold(w http.ResponseWriter, r *http.Request) {
	var req scaffold.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	out, err := s.scaffold.Scaffold(r.Context(), req)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}

	subject := req.TeamID
	if req.Kind == scaffold.KindAgent {
		subject = req.AgentID
	}
	argsJSON, _ := json.Marshal(out.Args)
	s.recordHistory(&history.Entry{
		Kind:       history.KindScaffold,
		Subject:    subject,
		Args:       string(argsJSON),
		OK:         out.Result.OK,
		ExitCode:   out.Result.ExitCode,
		DurationMs: time.Since(start).Milliseconds(),
	})

	topic := natsbus.TopicScaffoldCompleted
	if !out.Result.OK {
		topic = natsbus.TopicScaffoldFailed
	}
	s.publishEvent(topic, req.RecipeID, map[string]any{
		"kind":     string(req.Kind),
		"subject":  subject,
		"exitCode": out.Result.ExitCode,
	})
	s.notifier.ScaffoldCompleted(r.Context(), string(req.Kind), req.RecipeID, subject, out.Result.OK)

	jsonResponse(w, map[string]any{"ok": out.Result.OK, "args": out.Args, "result": out.Result})
}

// --- goals ---

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context())
	if err != nil {
		jsonGoalError(w, err)
		return
	}
	jsonResponse(w, map[string]any{"goals": goals})
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.Read(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonGoalError(w, err)
		return
	}
	if g == nil {
		jsonError(w, "Not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]any{"goal": g.Frontmatter, "body": g.Body, "raw": g.Raw})
}

func (s *Server) putGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string   `json:"title"`
		Status string   `json:"status"`
		Tags   []string `json:"tags"`
		Teams  []string `json:"teams"`
		Body   string   `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := s.goals.Write(r.Context(), goal.Frontmatter{
		ID:     r.PathValue("id"),
		Title:  body.Title,
		Status: body.Status,
		Tags:   body.Tags,
		Teams:  body.Teams,
	}, body.Body)
	if err != nil {
		jsonGoalError(w, err)
		return
	}

	s.publishEvent(natsbus.TopicGoalUpdated, g.Frontmatter.ID, map[string]any{"status": g.Frontmatter.Status})
	jsonResponse(w, map[string]any{"goal": g.Frontmatter})
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed, err := s.goals.Delete(r.Context(), id)
	if err != nil {
		jsonGoalError(w, err)
		return
	}
	if !existed {
		jsonError(w, "Not found", http.StatusNotFound)
		return
	}
	s.publishEvent(natsbus.TopicGoalDeleted, id, nil)
	jsonResponse(w, map[string]any{"ok": true})
}

func (s *Server) promoteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	start := time.Now()
	res, err := s.promoter.Promote(r.Context(), id)
	if err != nil {
		jsonGoalError(w, err)
		return
	}

	s.recordHistory(&history.Entry{
		Kind:       history.KindPromotion,
		Subject:    res.Goal.ID,
		OK:         true,
		DurationMs: time.Since(start).Milliseconds(),
	})
	s.publishEvent(natsbus.TopicGoalPromoted, res.Goal.ID, map[string]any{
		"inboxPath": res.InboxPath,
		"pinged":    res.Ping.OK,
	})
	s.notifier.GoalPromoted(r.Context(), res.Goal.ID, s.promoterTeamID(), res.Ping.OK)

	jsonResponse(w, res)
}

func (s *Server) promoterTeamID() string {
	if s.promoter == nil {
		return ""
	}
	return s.promoter.TeamID()
}

// --- teams ---

func (s *Server) getTeamMeta(w http.ResponseWriter, r *http.Request) {
	teamID := strings.TrimSpace(r.URL.Query().Get("teamId"))
	if teamID == "" {
		jsonError(w, "teamId is required", http.StatusBadRequest)
		return
	}

	base, err := openclaw.BaseWorkspace(r.Context(), s.inv)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	teamDir := workspace.TeamDir(base, teamID)
	metaPath := workspace.TeamMetaPath(teamDir)

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		jsonResponse(w, map[string]any{
			"ok": true, "teamId": teamID, "teamDir": teamDir, "metaPath": metaPath,
			"meta": nil, "missing": true,
		})
		return
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		jsonResponse(w, map[string]any{
			"ok": true, "teamId": teamID, "teamDir": teamDir, "metaPath": metaPath,
			"meta": nil, "missing": true,
		})
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "teamId": teamID, "teamDir": teamDir, "metaPath": metaPath, "meta": meta,
	})
}

func (s *Server) setTeamMeta(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID     string `json:"teamId"`
		RecipeID   string `json:"recipeId"`
		RecipeName string `json:"recipeName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	teamID := strings.TrimSpace(body.TeamID)
	recipeID := strings.TrimSpace(body.RecipeID)
	if teamID == "" {
		jsonError(w, "teamId is required", http.StatusBadRequest)
		return
	}
	if recipeID == "" {
		jsonError(w, "recipeId is required", http.StatusBadRequest)
		return
	}

	base, err := openclaw.BaseWorkspace(r.Context(), s.inv)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	teamDir := workspace.TeamDir(base, teamID)
	metaPath := workspace.TeamMetaPath(teamDir)

	meta := map[string]any{
		"teamId":     teamID,
		"recipeId":   recipeID,
		"recipeName": body.RecipeName,
		"attachedAt": time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.MkdirAll(teamDir, 0o755); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(metaPath, append(data, '\n'), 0o644); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]any{
		"ok": true, "teamId": teamID, "teamDir": teamDir, "metaPath": metaPath, "meta": meta,
	})
}

func (s *Server) getTeamFile(w http.ResponseWriter, r *http.Request) {
	teamID := strings.TrimSpace(r.URL.Query().Get("teamId"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if teamID == "" {
		jsonError(w, "teamId is required", http.StatusBadRequest)
		return
	}
	dir, safe, ok := s.resolveTeamFile(w, r, teamID, name)
	if !ok {
		return
	}

	filePath := filepath.Join(dir, safe)
	content, err := os.ReadFile(filePath)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "teamId": teamID, "name": safe, "filePath": filePath, "content": string(content),
	})
}

func (s *Server) putTeamFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID  string  `json:"teamId"`
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	teamID := strings.TrimSpace(body.TeamID)
	if teamID == "" {
		jsonError(w, "teamId is required", http.StatusBadRequest)
		return
	}
	if body.Content == nil {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}
	dir, safe, ok := s.resolveTeamFile(w, r, teamID, strings.TrimSpace(body.Name))
	if !ok {
		return
	}

	filePath := filepath.Join(dir, safe)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(filePath, []byte(*body.Content), 0o644); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{"ok": true, "teamId": teamID, "name": safe, "filePath": filePath})
}

// resolveTeamFile validates the relative name and resolves the team dir.
// On failure it writes the error response and returns ok=false.
func (s *Server) resolveTeamFile(w http.ResponseWriter, r *http.Request, teamID, name string) (dir, safe string, ok bool) {
	if name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return "", "", false
	}
	safe, err := workspace.SafeRelativeName(name)
	if err != nil {
		jsonErrorFrom(w, err)
		return "", "", false
	}
	base, err := openclaw.BaseWorkspace(r.Context(), s.inv)
	if err != nil {
		jsonErrorFrom(w, err)
		return "", "", false
	}
	return workspace.TeamDir(base, teamID), safe, true
}

func (s *Server) listTeamSkills(w http.ResponseWriter, r *http.Request) {
	l, err := s.skills.ForTeam(r.Context(), r.URL.Query().Get("teamId"))
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "teamId": strings.TrimSpace(r.URL.Query().Get("teamId")),
		"skillsDir": l.SkillsDir, "skills": l.Skills, "note": l.Note,
	})
}

// --- agents ---

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := openclaw.ListAgents(r.Context(), s.inv)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{"agents": agents})
}

func (s *Server) deleteAgent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		jsonError(w, "id is required", http.StatusBadRequest)
		return
	}
	res, err := openclaw.DeleteAgent(r.Context(), s.inv, id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(errs.HTTPStatus(err))
		json.NewEncoder(w).Encode(map[string]any{
			"ok": false, "error": errs.Message(err), "stdout": res.Stdout, "stderr": res.Stderr,
		})
		return
	}
	jsonResponse(w, map[string]any{"ok": true, "id": id, "stdout": res.Stdout, "stderr": res.Stderr})
}

func (s *Server) getAgentFile(w http.ResponseWriter, r *http.Request) {
	agentID := strings.TrimSpace(r.URL.Query().Get("agentId"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if agentID == "" {
		jsonError(w, "agentId is required", http.StatusBadRequest)
		return
	}
	if name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	safe, err := workspace.SafeRelativeName(name)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}

	l, err := s.skills.ForAgent(r.Context(), agentID)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	filePath := filepath.Join(l.Workspace, safe)
	content, err := os.ReadFile(filePath)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "agentId": agentID, "workspace": l.Workspace,
		"name": safe, "filePath": filePath, "content": string(content),
	})
}

func (s *Server) putAgentFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID string  `json:"agentId"`
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	agentID := strings.TrimSpace(body.AgentID)
	name := strings.TrimSpace(body.Name)
	if agentID == "" {
		jsonError(w, "agentId is required", http.StatusBadRequest)
		return
	}
	if name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	if body.Content == nil {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}
	safe, err := workspace.SafeRelativeName(name)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}

	l, err := s.skills.ForAgent(r.Context(), agentID)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	filePath := filepath.Join(l.Workspace, safe)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(filePath, []byte(*body.Content), 0o644); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "agentId": agentID, "workspace": l.Workspace, "name": safe, "filePath": filePath,
	})
}

func (s *Server) listAgentSkills(w http.ResponseWriter, r *http.Request) {
	agentID := strings.TrimSpace(r.URL.Query().Get("agentId"))
	l, err := s.skills.ForAgent(r.Context(), agentID)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "agentId": agentID, "workspace": l.Workspace,
		"skillsDir": l.SkillsDir, "skills": l.Skills, "note": l.Note,
	})
}

func (s *Server) installAgentSkill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID string `json:"agentId"`
		Skill   string `json:"skill"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := s.skills.Install(r.Context(), body.AgentID, body.Skill)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(errs.HTTPStatus(err))
		json.NewEncoder(w).Encode(map[string]any{
			"ok": false, "error": errs.Message(err), "stdout": res.Stdout, "stderr": res.Stderr,
		})
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "agentId": strings.TrimSpace(body.AgentID), "skill": strings.TrimSpace(body.Skill),
		"stdout": res.Stdout, "stderr": res.Stderr,
	})
}

// --- cron ---

func (s *Server) cronJobAction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID     string `json:"id"`
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := s.cron.Do(r.Context(), body.ID, body.Action)
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "action": out.Action, "id": out.ID,
		"stdout": out.Result.Stdout, "stderr": out.Result.Stderr,
	})
}

func (s *Server) cronRecipeInstalled(w http.ResponseWriter, r *http.Request) {
	report, err := s.cron.RecipeInstalled(r.Context(), r.URL.Query().Get("teamId"))
	if err != nil {
		jsonErrorFrom(w, err)
		return
	}
	jsonResponse(w, map[string]any{
		"ok": true, "teamId": report.TeamID, "teamDir": report.TeamDir,
		"mappingPath": report.MappingPath, "jobCount": report.JobCount, "jobs": report.Jobs,
	})
}

// --- system ---

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		jsonError(w, "history store unavailable", http.StatusServiceUnavailable)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	entries, err := s.history.Recent(limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{"entries": entries})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	natsStatus := "disabled"
	if s.bus != nil {
		natsStatus = "ok"
	}
	jsonResponse(w, map[string]any{
		"status":    "ok",
		"uptime":    formatUptime(time.Since(s.startedAt)),
		"nats":      natsStatus,
		"timestamp": time.Now().UTC(),
		"version":   s.version,
	})
}

// --- helpers ---

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	day := 24 * time.Hour
	switch {
	case d >= day:
		return strconv.Itoa(int(d/day)) + "d " + (d % day).Round(time.Minute).String()
	default:
		return d.String()
	}
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// jsonErrorFrom maps a kinded error to its HTTP status.
func jsonErrorFrom(w http.ResponseWriter, err error) {
	jsonError(w, errs.Message(err), errs.HTTPStatus(err))
}

// jsonGoalError classifies goal errors, which mix kinded errors with plain
// filesystem and parse failures.
func jsonGoalError(w http.ResponseWriter, err error) {
	if kind := errs.KindOf(err); kind != errs.KindInternal {
		jsonErrorFrom(w, err)
		return
	}
	msg := errs.Message(err)
	jsonError(w, msg, goal.ErrorStatus(msg))
}
