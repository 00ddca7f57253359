package document

import (
	"fmt"
	"sort"
)

// DefaultShareableKinds is the built-in allow-list of kinds that carry the
// shared attributes.
var DefaultShareableKinds = []Kind{
	KindParagraph,
	KindHeading,
	KindBulletList,
	KindOrderedList,
	KindTaskList,
	KindListItem,
	KindTaskItem,
	KindBlockquote,
	KindCodeBlock,
	KindImage,
}

// Schema holds the editor configuration the backend needs: which kinds are
// shareable, and the node types the editor defines beyond the built-in kinds.
type Schema struct {
	shareable map[Kind]bool

	blocks      map[Kind]bool
	inlineAtoms map[Kind]bool
	blockAtoms  map[Kind]bool
}

// CustomKinds declares editor node types the built-in table does not know.
// Their position size cannot be inferred from content alone when empty, so
// content-less nodes of undeclared kinds are rejected by Parse.
type CustomKinds struct {
	// Blocks are ordinary blocks, possibly empty.
	Blocks []Kind
	// InlineAtoms are inline nodes without content, such as emoji.
	InlineAtoms []Kind
	// BlockAtoms are blocks without content, such as embeds.
	BlockAtoms []Kind
}

// NewSchema builds a schema from an allow-list of kind names.
// The root and inline kinds cannot be made shareable.
func NewSchema(kinds []Kind) (*Schema, error) {
	s := &Schema{shareable: make(map[Kind]bool, len(kinds))}
	for _, k := range kinds {
		if k == "" {
			return nil, fmt.Errorf("shareable kind cannot be empty")
		}
		switch k.Class() {
		case ClassRoot, ClassInline:
			return nil, fmt.Errorf("kind %q cannot be shareable", k)
		}
		s.shareable[k] = true
	}
	return s, nil
}

// WithCustomKinds declares the editor's custom node types. A kind may be
// declared once, may not redefine a built-in kind, and an inline atom cannot
// be shareable.
func (s *Schema) WithCustomKinds(c CustomKinds) (*Schema, error) {
	s.blocks = make(map[Kind]bool, len(c.Blocks))
	s.inlineAtoms = make(map[Kind]bool, len(c.InlineAtoms))
	s.blockAtoms = make(map[Kind]bool, len(c.BlockAtoms))

	declared := make(map[Kind]bool)
	for _, group := range []struct {
		kinds []Kind
		into  map[Kind]bool
	}{
		{c.Blocks, s.blocks},
		{c.InlineAtoms, s.inlineAtoms},
		{c.BlockAtoms, s.blockAtoms},
	} {
		for _, k := range group.kinds {
			switch {
			case k == "":
				return nil, fmt.Errorf("custom kind cannot be empty")
			case k.Known():
				return nil, fmt.Errorf("kind %q is built in", k)
			case declared[k]:
				return nil, fmt.Errorf("kind %q declared twice", k)
			}
			declared[k] = true
			group.into[k] = true
		}
	}
	for k := range s.inlineAtoms {
		if s.shareable[k] {
			return nil, fmt.Errorf("inline kind %q cannot be shareable", k)
		}
	}
	return s, nil
}

// declares reports whether k is built in or declared as a custom kind.
func (s *Schema) declares(k Kind) bool {
	return k.Known() || s.blocks[k] || s.inlineAtoms[k] || s.blockAtoms[k]
}

// atomOf returns how a node of kind k is sized.
func (s *Schema) atomOf(k Kind) atom {
	switch {
	case s.inlineAtoms[k]:
		return atomInline
	case s.blockAtoms[k]:
		return atomBlock
	}
	return atomNone
}

// DefaultSchema returns a schema using DefaultShareableKinds.
func DefaultSchema() *Schema {
	s, err := NewSchema(DefaultShareableKinds)
	if err != nil {
		panic(err)
	}
	return s
}

// IsShareable reports whether nodes of kind k carry the shared attributes.
func (s *Schema) IsShareable(k Kind) bool {
	return s.shareable[k]
}

// ShareableKinds returns the allow-list sorted by name.
func (s *Schema) ShareableKinds() []Kind {
	kinds := make([]Kind, 0, len(s.shareable))
	for k := range s.shareable {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Normalize makes every node's Share field agree with the schema: shareable
// blocks gain a default state, everything else loses it.
func (s *Schema) Normalize(doc *Document) {
	doc.Root.Walk(func(n *Node) bool {
		if s.IsShareable(n.Kind) {
			if n.Share == nil {
				n.Share = &ShareState{}
			}
		} else {
			n.Share = nil
		}
		return true
	})
}
