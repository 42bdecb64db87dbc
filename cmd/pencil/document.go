package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shamseena-dev/pencil"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readDocument decodes a JSON or YAML document, chosen by extension.
func readDocument(path string) (pencil.Definition, error) {
	var def pencil.Definition
	data, err := os.ReadFile(path)
	if err != nil {
		return def, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &def)
	} else {
		err = json.Unmarshal(data, &def)
	}
	if err != nil {
		return def, fmt.Errorf("decode %s: %w", path, err)
	}
	return def, nil
}

// writeDocument encodes def as JSON or YAML, chosen by extension.
func writeDocument(path string, def pencil.Definition) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(def)
	} else {
		data, err = json.MarshalIndent(def, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// countNodes returns the number of nodes in def.
func countNodes(def pencil.Definition) int {
	n := 1
	for _, child := range def.Children {
		n += countNodes(child)
	}
	return n
}
