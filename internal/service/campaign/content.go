package campaign

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"lorekeeper/internal/document"
)

// parseStored decodes content read from the database. Notes saved before
// they had content decode as an empty document.
func parseStored(raw json.RawMessage, schema *document.Schema) (*document.Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return document.Empty(schema), nil
	}
	doc, err := document.Parse(trimmed, schema)
	if err != nil {
		return nil, fmt.Errorf("decode stored note content: %w", err)
	}
	return doc, nil
}

// prepareForSave assigns block ids and serializes the document. It returns
// the bytes to store and the recomputed hasSharedContent flag.
func prepareForSave(doc *document.Document) (json.RawMessage, bool, error) {
	document.AssignBlockIDs(doc, uuid.NewString)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("encode note content: %w", err)
	}
	return data, document.HasSharedContent(doc), nil
}
