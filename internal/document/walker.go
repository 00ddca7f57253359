package document

// Selection is a half-open position range [From, To). From == To is a cursor.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{From: pos, To: pos}
}

// Empty reports whether the selection covers no positions.
func (s Selection) Empty() bool {
	return s.From >= s.To
}

// Target is a shareable block found by CollectShareableBlocks. Pos is the
// position directly before the node.
type Target struct {
	Pos  int
	Node *Node
}

// NodesBetween calls fn for every node overlapping [from, to), parents before
// children, with the node's start position and its parent. Returning false
// from fn skips the node's children.
func (d *Document) NodesBetween(from, to int, fn func(n *Node, pos int, parent *Node) bool) {
	nodesBetween(d.Root, from, to, 0, fn)
}

func nodesBetween(parent *Node, from, to, nodeStart int, fn func(*Node, int, *Node) bool) {
	pos := 0
	for _, child := range parent.Content {
		if pos >= to {
			return
		}
		end := pos + child.NodeSize()
		if end > from && fn(child, nodeStart+pos, parent) && len(child.Content) > 0 {
			start := pos + 1
			nodesBetween(child, max(0, from-start), min(child.ContentSize(), to-start), nodeStart+start, fn)
		}
		pos = end
	}
}

// CollectShareableBlocks returns the shareable blocks touched by [from, to) in
// document order. List containers are descended but never returned; list items
// are returned as a unit and their children are not visited.
func CollectShareableBlocks(doc *Document, from, to int, schema *Schema) []Target {
	if from >= to {
		return nil
	}
	from, to = max(from, 0), min(to, doc.Size())

	var targets []Target
	doc.NodesBetween(from, to, func(n *Node, pos int, _ *Node) bool {
		switch n.Class() {
		case ClassListContainer:
			return true
		case ClassListItem:
			if schema.IsShareable(n.Kind) {
				targets = append(targets, Target{Pos: pos, Node: n})
			}
			return false
		case ClassInline:
			return false
		default:
			if schema.IsShareable(n.Kind) {
				targets = append(targets, Target{Pos: pos, Node: n})
			}
			return true
		}
	})
	return targets
}

// enclosing calls fn for each block strictly containing pos, outermost first,
// until fn returns false.
func (d *Document) enclosing(pos int, fn func(n *Node, start int) bool) {
	done := false
	d.NodesBetween(pos, pos, func(n *Node, start int, _ *Node) bool {
		if done || !n.IsBlock() {
			return false
		}
		if start < pos && pos < start+n.NodeSize() {
			if !fn(n, start) {
				done = true
				return false
			}
			return true
		}
		return false
	})
}

// CanToggleShared reports whether the cursor sits inside at least one
// non-root block.
func CanToggleShared(doc *Document, cursor int) bool {
	found := false
	doc.enclosing(cursor, func(*Node, int) bool {
		found = true
		return false
	})
	return found
}

// IsSharedActive reports the pressed state of the share toggle. For a cursor
// the first enclosing node carrying the shared attributes decides, walking
// from the outermost block inwards. For a range the state is active when any
// target block is shared.
func IsSharedActive(doc *Document, sel Selection, schema *Schema) bool {
	if sel.Empty() {
		active := false
		doc.enclosing(sel.From, func(n *Node, _ int) bool {
			if n.Share == nil {
				return true
			}
			active = n.Share.Shared
			return false
		})
		return active
	}
	for _, t := range CollectShareableBlocks(doc, sel.From, sel.To, schema) {
		if t.Node.IsShared() {
			return true
		}
	}
	return false
}

// NodeAt returns the node starting at pos, searching every depth, and its
// parent. It returns nil when no node starts there.
func (d *Document) NodeAt(pos int) (node, parent *Node) {
	if pos < 0 || pos >= d.Size() {
		return nil, nil
	}
	d.NodesBetween(pos, pos+1, func(n *Node, start int, p *Node) bool {
		if node != nil {
			return false
		}
		if start == pos {
			node, parent = n, p
			return false
		}
		return true
	})
	return node, parent
}
