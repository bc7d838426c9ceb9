package usedfiles

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// listDocument is the object form shared by the JSON and YAML formats.
type listDocument struct {
	UsedFiles []string `json:"used_files" yaml:"used_files"`
}

func parseText(content []byte) []string {
	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

func parseJSON(content []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var entries []string
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse JSON list: %w", err)
		}
		return entries, nil
	}

	var doc listDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	return doc.UsedFiles, nil
}

func parseYAML(content []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	// Empty document
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var entries []string
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to parse YAML list: %w", err)
		}
		return entries, nil
	case yaml.MappingNode:
		var doc listDocument
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
		return doc.UsedFiles, nil
	default:
		return nil, fmt.Errorf("failed to parse YAML: expected a list or a mapping with used_files")
	}
}
