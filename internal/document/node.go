// Package document implements the rich-text note model used by the editor:
// a ProseMirror-compatible node tree, positional traversal, the shared-content
// commands, and block-level helpers (block ids, inline tag mentions).
package document

// Kind identifies a node type. Known kinds are listed below; unknown type names
// read from stored content are kept verbatim and treated as ordinary blocks.
type Kind string

const (
	KindDoc            Kind = "doc"
	KindParagraph      Kind = "paragraph"
	KindHeading        Kind = "heading"
	KindBulletList     Kind = "bulletList"
	KindOrderedList    Kind = "orderedList"
	KindTaskList       Kind = "taskList"
	KindListItem       Kind = "listItem"
	KindTaskItem       Kind = "taskItem"
	KindBlockquote     Kind = "blockquote"
	KindCodeBlock      Kind = "codeBlock"
	KindImage          Kind = "image"
	KindHorizontalRule Kind = "horizontalRule"
	KindTable          Kind = "table"
	KindTableRow       Kind = "tableRow"
	KindTableCell      Kind = "tableCell"
	KindTableHeader    Kind = "tableHeader"
	KindText           Kind = "text"
	KindHardBreak      Kind = "hardBreak"
	KindMention        Kind = "mention"
)

// Class is the structural role a kind plays during traversal.
type Class int

const (
	// ClassBlock is an ordinary block (paragraph, heading, blockquote, ...).
	ClassBlock Class = iota
	// ClassRoot is the document node itself.
	ClassRoot
	// ClassListContainer holds list items and is never a share target.
	ClassListContainer
	// ClassListItem is treated as an atomic share target.
	ClassListItem
	// ClassInline is text and inline atoms.
	ClassInline
)

var kindClasses = map[Kind]Class{
	KindDoc:         ClassRoot,
	KindBulletList:  ClassListContainer,
	KindOrderedList: ClassListContainer,
	KindTaskList:    ClassListContainer,
	KindListItem:    ClassListItem,
	KindTaskItem:    ClassListItem,
	KindText:        ClassInline,
	KindHardBreak:   ClassInline,
	KindMention:     ClassInline,
}

var knownKinds = map[Kind]bool{
	KindDoc: true, KindParagraph: true, KindHeading: true, KindBulletList: true,
	KindOrderedList: true, KindTaskList: true, KindListItem: true, KindTaskItem: true,
	KindBlockquote: true, KindCodeBlock: true, KindImage: true, KindHorizontalRule: true,
	KindTable: true, KindTableRow: true, KindTableCell: true, KindTableHeader: true,
	KindText: true, KindHardBreak: true, KindMention: true,
}

// Kinds without content. They occupy a single position.
var leafKinds = map[Kind]bool{
	KindImage:          true,
	KindHorizontalRule: true,
	KindHardBreak:      true,
	KindMention:        true,
}

// Class returns the structural class of the kind.
func (k Kind) Class() Class {
	if c, ok := kindClasses[k]; ok {
		return c
	}
	return ClassBlock
}

// Known reports whether k is one of the built-in kinds.
func (k Kind) Known() bool {
	return knownKinds[k]
}

// atom marks nodes whose kind the editor schema declares as an atom.
type atom uint8

const (
	atomNone atom = iota
	atomInline
	atomBlock
)

// UserRef identifies the user who last shared a block.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ShareState holds the shared attributes of a shareable block.
// SharedBy is not cleared when a block is unshared.
type ShareState struct {
	Shared   bool
	SharedBy *UserRef
}

// Mark is inline formatting on a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one node of the document tree.
//
// Typed fields carry the attributes the backend reasons about; everything else
// stays in Attrs so stored content round-trips unchanged.
type Node struct {
	Kind Kind

	// ID is the block id (blocks only).
	ID string
	// Share is non-nil only for kinds in the schema's shareable allow-list.
	Share *ShareState

	// TagID and Label are set on mention nodes.
	TagID string
	Label string

	Text  string
	Marks []Mark
	Attrs map[string]any

	Content []*Node

	// atom is set by Parse for kinds the schema declares as custom atoms.
	atom atom
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.Kind == KindText
}

// Class returns the node's structural class. Custom inline atoms are inline
// whatever their kind name.
func (n *Node) Class() Class {
	if n.atom == atomInline {
		return ClassInline
	}
	return n.Kind.Class()
}

// IsLeaf reports whether the node can never hold content.
func (n *Node) IsLeaf() bool {
	return n.IsText() || leafKinds[n.Kind] || n.atom != atomNone
}

// IsBlock reports whether the node is a non-root block.
func (n *Node) IsBlock() bool {
	c := n.Class()
	return c != ClassInline && c != ClassRoot
}

// IsShared reports whether the node is a shareable block currently marked shared.
func (n *Node) IsShared() bool {
	return n.Share != nil && n.Share.Shared
}

// NodeSize is the number of positions the node occupies.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return utf16Len(n.Text)
	}
	if n.IsLeaf() {
		return 1
	}
	return n.ContentSize() + 2
}

// ContentSize is the combined size of the node's children.
func (n *Node) ContentSize() int {
	size := 0
	for _, child := range n.Content {
		size += child.NodeSize()
	}
	return size
}

// TextContent concatenates the text of every descendant text node.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var out []byte
	for _, child := range n.Content {
		out = append(out, child.TextContent()...)
	}
	return string(out)
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := n.shallowCopy()
	if n.Content != nil {
		cp.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			cp.Content[i] = child.Clone()
		}
	}
	return cp
}

// shallowCopy copies the node's own fields; Content is left nil.
func (n *Node) shallowCopy() *Node {
	cp := &Node{
		Kind:  n.Kind,
		ID:    n.ID,
		TagID: n.TagID,
		Label: n.Label,
		Text:  n.Text,
		atom:  n.atom,
	}
	if n.Share != nil {
		share := *n.Share
		if share.SharedBy != nil {
			by := *share.SharedBy
			share.SharedBy = &by
		}
		cp.Share = &share
	}
	if n.Marks != nil {
		cp.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			cp.Marks[i] = Mark{Type: m.Type, Attrs: copyAttrs(m.Attrs)}
		}
	}
	cp.Attrs = copyAttrs(n.Attrs)
	return cp
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Content {
		child.Walk(fn)
	}
}

func copyAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// utf16Len counts UTF-16 code units, which is how the editor measures text.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
