package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a listing from a JSON, YAML, or Markdown file.
//
// Markdown files carry the listing fields as YAML frontmatter and the
// description as the document body, which is flattened to plain text
// before scoring.
func Load(path string) (*Listing, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var l *Listing
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		l, err = parseJSON(content)
	case ".yaml", ".yml":
		l, err = parseYAML(content)
	case ".md", ".markdown":
		l, err = parseMarkdown(content)
	default:
		return nil, fmt.Errorf("unsupported listing format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l.Normalize()
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func parseJSON(content []byte) (*Listing, error) {
	var l Listing
	if err := json.Unmarshal(content, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func parseYAML(content []byte) (*Listing, error) {
	var l Listing
	if err := yaml.Unmarshal(content, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func parseMarkdown(content []byte) (*Listing, error) {
	frontmatter, body := SplitFrontmatter(content)
	if frontmatter == nil {
		return nil, fmt.Errorf("markdown listing requires YAML frontmatter")
	}

	var l Listing
	if err := yaml.Unmarshal(frontmatter, &l); err != nil {
		return nil, err
	}

	// The body is the description unless the frontmatter already set one.
	if l.Description == "" {
		l.Description = MarkdownToText(body)
	}
	return &l, nil
}

// SplitFrontmatter separates YAML frontmatter (between --- delimiters)
// from the remaining content. Returns nil frontmatter when absent.
func SplitFrontmatter(content []byte) ([]byte, []byte) {
	s := string(content)
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatter := strings.TrimSpace(rest[:endIdx])
	remaining := rest[endIdx+4:]
	remaining = strings.TrimPrefix(remaining, "\n")

	return []byte(frontmatter), []byte(remaining)
}
