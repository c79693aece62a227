package memory

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// markdownFrontmatter is the optional YAML header of a memory file.
type markdownFrontmatter struct {
	Key       string   `yaml:"key"`
	Category  string   `yaml:"category"`
	Tags      []string `yaml:"tags"`
	CreatedAt string   `yaml:"created_at"`
}

// MarkdownDir returns the markdown memory directory for a workspace.
func MarkdownDir(workspaceDir string) string {
	return filepath.Join(workspaceDir, "memory")
}

// MarkdownEntries lists up to limit .md files in dir, newest first.
// Files with a frontmatter header use its key, category and timestamp.
func MarkdownEntries(dir string, limit int) ([]Entry, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("list memory files: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		e := parseMarkdownEntry(data)
		if e.Key == "" {
			e.Key = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		if e.CreatedAt.IsZero() {
			if info, err := os.Stat(path); err == nil {
				e.CreatedAt = info.ModTime()
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func parseMarkdownEntry(data []byte) Entry {
	var e Entry
	body := data
	if bytes.HasPrefix(data, []byte("---\n")) {
		rest := data[4:]
		if end := bytes.Index(rest, []byte("\n---")); end >= 0 {
			var fm markdownFrontmatter
			if err := yaml.Unmarshal(rest[:end], &fm); err == nil {
				e.Key = fm.Key
				e.Category = fm.Category
				if t, err := time.Parse(time.RFC3339, fm.CreatedAt); err == nil {
					e.CreatedAt = t
				}
			}
			body = bytes.TrimLeft(rest[end+4:], "\r\n")
		}
	}
	if e.Category == "" {
		e.Category = "core"
	}
	e.Content = firstLine(string(body))
	return e
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return ""
}
