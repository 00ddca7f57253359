package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lorekeeper/internal/document"
)

// EditorSchemaFile is the YAML layout of EDITOR_SCHEMA_FILE:
//
//	shareable:
//	  - paragraph
//	  - heading
//	  - listItem
//	  - callout
//	blocks:
//	  - callout
//	inline_atoms:
//	  - emoji
//	block_atoms:
//	  - embed
//
// The last three lists declare node types the editor adds to the built-in
// set; positions can only be computed for declared kinds.
type EditorSchemaFile struct {
	Shareable   []string `yaml:"shareable"`
	Blocks      []string `yaml:"blocks"`
	InlineAtoms []string `yaml:"inline_atoms"`
	BlockAtoms  []string `yaml:"block_atoms"`
}

// LoadEditorSchema reads the shareable allow-list from path. An empty path
// returns the built-in schema.
func LoadEditorSchema(path string) (*document.Schema, error) {
	if path == "" {
		return document.DefaultSchema(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read editor schema: %w", err)
	}
	return ParseEditorSchema(data)
}

// ParseEditorSchema decodes an editor schema document.
func ParseEditorSchema(data []byte) (*document.Schema, error) {
	var file EditorSchemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse editor schema: %w", err)
	}
	if len(file.Shareable) == 0 {
		return nil, fmt.Errorf("editor schema: shareable list is empty")
	}
	schema, err := document.NewSchema(toKinds(file.Shareable))
	if err != nil {
		return nil, fmt.Errorf("editor schema: %w", err)
	}
	schema, err = schema.WithCustomKinds(document.CustomKinds{
		Blocks:      toKinds(file.Blocks),
		InlineAtoms: toKinds(file.InlineAtoms),
		BlockAtoms:  toKinds(file.BlockAtoms),
	})
	if err != nil {
		return nil, fmt.Errorf("editor schema: %w", err)
	}
	return schema, nil
}

func toKinds(names []string) []document.Kind {
	kinds := make([]document.Kind, len(names))
	for i, name := range names {
		kinds[i] = document.Kind(name)
	}
	return kinds
}
