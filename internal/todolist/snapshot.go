package todolist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

const snapshotSchemaURL = "snapshot.schema.json"

var snapshotSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchemaJSON)); err != nil {
		panic(fmt.Sprintf("add snapshot schema: %v", err))
	}
	return compiler.MustCompile(snapshotSchemaURL)
}

// EncodeSnapshot serializes items as a JSON array with 2-space indentation.
// A nil slice is written as [].
func EncodeSnapshot(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses and validates a persisted list. Items repeating an
// earlier id are dropped; the returned count says how many.
func DecodeSnapshot(data []byte) ([]model.Item, int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("json decode: %w", err)
	}
	if err := snapshotSchema.Validate(raw); err != nil {
		return nil, 0, fmt.Errorf("validate snapshot: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}

	seen := make(map[int64]struct{}, len(items))
	out := make([]model.Item, 0, len(items))
	for i, it := range items {
		// the schema pattern only knows ASCII whitespace
		if strings.TrimSpace(it.Text) == "" {
			return nil, 0, fmt.Errorf("validate snapshot: item %d: blank text", i)
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out, len(items) - len(out), nil
}
