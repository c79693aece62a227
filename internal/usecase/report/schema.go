package report

import (
	"encoding/json"
	"fmt"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonschema"
	"gopkg.in/yaml.v3"

	"zeroclaw/internal/infra/config"
)

const schemaPreviewLines = 120

// ConfigSchema returns the JSON schema of the configuration document,
// keyed by the yaml field names.
func ConfigSchema() ([]byte, error) {
	r := &invopop.Reflector{
		FieldNameTag:   "yaml",
		DoNotReference: true,
		Anonymous:      true,
	}
	s := r.Reflect(&config.Config{})
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	return data, nil
}

// ValidateAgainstSchema checks cfg, as it would be written, against
// ConfigSchema.
func ValidateAgainstSchema(cfg *config.Config) error {
	raw, err := ConfigSchema()
	if err != nil {
		return err
	}
	schema, err := jsonschema.NewCompiler().Compile(raw)
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	doc, err := documentOf(cfg)
	if err != nil {
		return err
	}
	result := schema.Validate(doc)
	if !result.IsValid() {
		return fmt.Errorf("%s", result.Error())
	}
	return nil
}

// documentOf renders cfg through yaml and back into plain JSON values.
func documentOf(cfg *config.Config) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var node map[string]any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	js, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return doc, nil
}

func configSchemaLines() []string {
	lines := []string{MenuConfigSchema.Title(), ""}
	data, err := ConfigSchema()
	if err != nil {
		return append(lines, fmt.Sprintf("<schema serialization failed: %v>", err))
	}
	lines = append(lines, fmt.Sprintf("Previewing first %d lines: ", schemaPreviewLines))
	for i, l := range strings.Split(string(data), "\n") {
		if i == schemaPreviewLines {
			break
		}
		lines = append(lines, l)
	}
	return lines
}
