package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when content is not a ProseMirror document.
var ErrInvalidDocument = errors.New("invalid document")

// Attribute names with typed fields on Node.
const (
	attrID       = "id"
	attrLabel    = "label"
	attrShared   = "shared"
	attrSharedBy = "sharedBy"
)

// Document is a parsed note body. Root is always a doc node.
type Document struct {
	Root *Node
}

// rawNode is the wire shape of a ProseMirror node.
type rawNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*rawNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Empty returns a document holding a single empty paragraph.
func Empty(schema *Schema) *Document {
	doc := &Document{Root: &Node{Kind: KindDoc, Content: []*Node{{Kind: KindParagraph}}}}
	schema.Normalize(doc)
	return doc
}

// Parse decodes ProseMirror JSON. Shared attributes are kept only on kinds the
// schema allows; on other kinds they are dropped.
func Parse(data []byte, schema *Schema) (*Document, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if Kind(raw.Type) != KindDoc {
		return nil, fmt.Errorf("%w: root type is %q, expected %q", ErrInvalidDocument, raw.Type, KindDoc)
	}
	root, err := fromRaw(&raw, schema)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

func fromRaw(raw *rawNode, schema *Schema) (*Node, error) {
	if raw.Type == "" {
		return nil, fmt.Errorf("%w: node without type", ErrInvalidDocument)
	}
	n := &Node{
		Kind:  Kind(raw.Type),
		Text:  raw.Text,
		Marks: raw.Marks,
		atom:  schema.atomOf(Kind(raw.Type)),
	}
	if n.IsText() && raw.Text == "" {
		return nil, fmt.Errorf("%w: empty text node", ErrInvalidDocument)
	}
	// An undeclared kind with content is a block either way; without content
	// it could be an atom or an empty block, and the two differ in size.
	if len(raw.Content) == 0 && !schema.declares(n.Kind) {
		return nil, fmt.Errorf("%w: unknown empty node %q; declare it in the editor schema", ErrInvalidDocument, n.Kind)
	}

	attrs := copyAttrs(raw.Attrs)
	if schema.IsShareable(n.Kind) {
		n.Share = &ShareState{}
		if v, ok := attrs[attrShared].(bool); ok {
			n.Share.Shared = v
		}
		n.Share.SharedBy = parseUserRef(attrs[attrSharedBy])
	}
	delete(attrs, attrShared)
	delete(attrs, attrSharedBy)

	switch {
	case n.Kind == KindMention:
		n.TagID, _ = attrs[attrID].(string)
		n.Label, _ = attrs[attrLabel].(string)
		delete(attrs, attrID)
		delete(attrs, attrLabel)
	case n.IsBlock():
		n.ID, _ = attrs[attrID].(string)
		delete(attrs, attrID)
	}
	if len(attrs) > 0 {
		n.Attrs = attrs
	}

	if len(raw.Content) > 0 {
		if n.IsLeaf() {
			return nil, fmt.Errorf("%w: %s node cannot have content", ErrInvalidDocument, n.Kind)
		}
		n.Content = make([]*Node, 0, len(raw.Content))
		for _, child := range raw.Content {
			if child == nil {
				continue
			}
			c, err := fromRaw(child, schema)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
	}
	return n, nil
}

// parseUserRef accepts either a bare user id string or an {id, name} object.
func parseUserRef(v any) *UserRef {
	switch ref := v.(type) {
	case string:
		if ref == "" {
			return nil
		}
		return &UserRef{ID: ref}
	case map[string]any:
		id, _ := ref["id"].(string)
		if id == "" {
			return nil
		}
		name, _ := ref["name"].(string)
		return &UserRef{ID: id, Name: name}
	}
	return nil
}

func (n *Node) toRaw() *rawNode {
	raw := &rawNode{
		Type:  string(n.Kind),
		Text:  n.Text,
		Marks: n.Marks,
	}
	attrs := copyAttrs(n.Attrs)
	set := func(k string, v any) {
		if attrs == nil {
			attrs = make(map[string]any)
		}
		attrs[k] = v
	}
	if n.Kind == KindMention {
		if n.TagID != "" {
			set(attrID, n.TagID)
		}
		if n.Label != "" {
			set(attrLabel, n.Label)
		}
	} else if n.ID != "" {
		set(attrID, n.ID)
	}
	if n.Share != nil {
		set(attrShared, n.Share.Shared)
		if n.Share.SharedBy != nil {
			set(attrSharedBy, n.Share.SharedBy)
		} else {
			set(attrSharedBy, nil)
		}
	}
	raw.Attrs = attrs

	if len(n.Content) > 0 {
		raw.Content = make([]*rawNode, len(n.Content))
		for i, child := range n.Content {
			raw.Content[i] = child.toRaw()
		}
	}
	return raw
}

// MarshalJSON encodes the node as ProseMirror JSON.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toRaw())
}

// MarshalJSON encodes the document as ProseMirror JSON.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.Root == nil {
		return []byte("null"), nil
	}
	return d.Root.MarshalJSON()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone()}
}

// Size is the size of the root's content, the upper bound for positions.
func (d *Document) Size() int {
	return d.Root.ContentSize()
}
