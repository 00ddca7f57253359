package document

// AssignBlockIDs gives every block without an id a fresh one from gen. When
// an id occurs more than once the first occurrence keeps it and later ones
// are reassigned. It returns the number of ids written.
func AssignBlockIDs(doc *Document, gen func() string) int {
	seen := make(map[string]bool)
	assigned := 0
	doc.Root.Walk(func(n *Node) bool {
		if !n.IsBlock() {
			return !n.IsLeaf()
		}
		if n.ID == "" || seen[n.ID] {
			n.ID = gen()
			assigned++
		}
		seen[n.ID] = true
		return true
	})
	return assigned
}

// FindBlock returns the block with the given id, or nil.
func FindBlock(doc *Document, blockID string) *Node {
	return findBlockIn(doc.Root, blockID)
}

// FindSharedBlock returns the block with the given id when it is shared or
// sits inside a shared block, and nil otherwise.
func FindSharedBlock(doc *Document, blockID string) *Node {
	var found *Node
	doc.Root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.IsShared() {
			found = findBlockIn(n, blockID)
			return false
		}
		return !n.IsLeaf()
	})
	return found
}

func findBlockIn(root *Node, blockID string) *Node {
	if blockID == "" {
		return nil
	}
	var found *Node
	root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.IsBlock() && n.ID == blockID {
			found = n
			return false
		}
		return true
	})
	return found
}

// BlockIDs returns the id of every block in document order.
func BlockIDs(doc *Document) []string {
	var ids []string
	doc.Root.Walk(func(n *Node) bool {
		if n.IsBlock() && n.ID != "" {
			ids = append(ids, n.ID)
		}
		return !n.IsLeaf()
	})
	return ids
}

// InlineTagIDs returns the tag ids mentioned inside the block's subtree,
// deduplicated, in document order. An unknown block yields nil.
func InlineTagIDs(doc *Document, blockID string) []string {
	block := FindBlock(doc, blockID)
	if block == nil {
		return nil
	}
	var ids []string
	seen := make(map[string]bool)
	block.Walk(func(n *Node) bool {
		if n.Kind == KindMention && n.TagID != "" && !seen[n.TagID] {
			seen[n.TagID] = true
			ids = append(ids, n.TagID)
		}
		return true
	})
	return ids
}

// HasSharedContent reports whether any node at any depth is shared.
func HasSharedContent(doc *Document) bool {
	found := false
	doc.Root.Walk(func(n *Node) bool {
		if found {
			return false
		}
		if n.IsShared() {
			found = true
		}
		return !found
	})
	return found
}

// SharedSubset returns a copy of the document reduced to its shared blocks.
// A shared block is kept whole; other nodes survive only as the ancestors of
// a shared block.
func SharedSubset(doc *Document) *Document {
	root := doc.Root.shallowCopy()
	root.Content = []*Node{}
	for _, child := range doc.Root.Content {
		if kept := prune(child); kept != nil {
			root.Content = append(root.Content, kept)
		}
	}
	return &Document{Root: root}
}

func prune(n *Node) *Node {
	if n.IsShared() {
		return n.Clone()
	}
	var kept []*Node
	for _, child := range n.Content {
		if c := prune(child); c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	cp := n.shallowCopy()
	cp.Content = kept
	return cp
}
