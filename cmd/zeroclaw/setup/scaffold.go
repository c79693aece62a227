package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ProjectContext personalizes the workspace files.
type ProjectContext struct {
	UserName  string
	Timezone  string
	AgentName string
	Style     string
}

// ScaffoldReport counts what ScaffoldWorkspace did.
type ScaffoldReport struct {
	CreatedDirs  int
	CreatedFiles int
	SkippedFiles int
}

var workspaceDirs = []string{"sessions", "memory", "state", "cron", "skills"}

func workspaceFiles(ctx ProjectContext) map[string]string {
	return map[string]string{
		"IDENTITY.md": fmt.Sprintf("# IDENTITY.md: Who Am I?\n\n"+
			"- **Name:** %s\n- **Nature:** a self-hosted AI assistant\n- **Vibe:** sharp, direct, resourceful\n", ctx.AgentName),
		"AGENTS.md": fmt.Sprintf("# AGENTS.md: %s Personal Assistant\n\n"+
			"## Every Session\n\n1. Read `SOUL.md`\n2. Read `USER.md`\n3. Use memory for recent context\n4. Act with clarity and care\n\n"+
			"## Safety\n\n- Never exfiltrate secrets.\n- Ask before destructive actions.\n- Prefer recoverable operations.\n", ctx.AgentName),
		"HEARTBEAT.md": fmt.Sprintf("# HEARTBEAT.md\n\n"+
			"# Keep this file empty (or comments only) to skip heartbeat work.\n# Add periodic checks you want %s to run.\n", ctx.AgentName),
		"SOUL.md": fmt.Sprintf("# SOUL.md: Who You Are\n\nYou are **%s**.\n\n"+
			"- Be genuinely helpful.\n- Stay grounded in what you know.\n- Keep privacy and safety first.\n- Communicate in this style: %s\n", ctx.AgentName, ctx.Style),
		"USER.md": fmt.Sprintf("# USER.md: Who You're Helping\n\n"+
			"- **Name:** %s\n- **Timezone:** %s\n- **Preferred style:** %s\n", ctx.UserName, ctx.Timezone, ctx.Style),
		"TOOLS.md": "# TOOLS.md: Local Notes\n\n" +
			"Keep machine-specific tool notes here: SSH aliases, hostnames, local paths.\n",
		"BOOTSTRAP.md": fmt.Sprintf("# BOOTSTRAP.md: First Run\n\n"+
			"Your human is **%s** (timezone: %s).\nIntroduce yourself as %s and learn their practical preferences.\n",
			ctx.UserName, ctx.Timezone, ctx.AgentName),
		"MEMORY.md": "# MEMORY.md: Long-Term Memory\n\n" +
			"Curate durable memory: key facts, decisions, preferences, open loops.\nKeep it short and high-signal.\n",
	}
}

// ScaffoldWorkspace creates the workspace layout under dir. Existing files
// are left untouched.
func ScaffoldWorkspace(dir string, ctx ProjectContext) (ScaffoldReport, error) {
	var rep ScaffoldReport
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rep, fmt.Errorf("create workspace: %w", err)
	}

	for _, d := range workspaceDirs {
		p := filepath.Join(dir, d)
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return rep, fmt.Errorf("create %s: %w", d, err)
		}
		rep.CreatedDirs++
	}

	files := workspaceFiles(ctx)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := filepath.Join(dir, name)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			rep.SkippedFiles++
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("create %s: %w", name, err)
		}
		_, werr := f.WriteString(files[name])
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return rep, fmt.Errorf("write %s: %w", name, werr)
		}
		rep.CreatedFiles++
	}
	return rep, nil
}
