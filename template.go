package main

import (
	"fmt"
	"os"
	"strings"
)

const articlePlaceholder = "{{ARTICLE}}"

// LoadTemplate reads the prompt template from disk
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}

// RenderPrompt substitutes the article and any extra named placeholders
// into the template. Substitution is textual only: unrecognized
// placeholders are left verbatim so they show up in dry-run previews.
func RenderPrompt(template, article string, extras map[string]string) string {
	text := strings.ReplaceAll(template, articlePlaceholder, article)
	for name, value := range extras {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}

// parseExtras converts repeated NAME=VALUE flags into a placeholder map
func parseExtras(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extras := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid extra %q (expected NAME=VALUE)", pair)
		}
		extras[strings.TrimSpace(name)] = value
	}
	return extras, nil
}
