package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is returned when a step addresses a position where no node starts.
	ErrInvalidPosition = errors.New("no node at position")
	// ErrNotShareable is returned when a step sets shared attributes on a kind
	// outside the shareable allow-list.
	ErrNotShareable = errors.New("node is not shareable")
)

type stepKind int

const (
	stepShared stepKind = iota
	stepSharedBy
)

// step is a single attribute change addressed by node position.
type step struct {
	kind   stepKind
	pos    int
	shared bool
	by     *UserRef
}

// Transaction collects attribute steps against a document and applies them
// all at once to a copy. The source document is never modified.
type Transaction struct {
	doc   *Document
	steps []step
}

// NewTransaction starts a transaction against doc.
func NewTransaction(doc *Document) *Transaction {
	return &Transaction{doc: doc}
}

// SetShared records a change of the shared flag of the node at pos.
func (tx *Transaction) SetShared(pos int, shared bool) *Transaction {
	tx.steps = append(tx.steps, step{kind: stepShared, pos: pos, shared: shared})
	return tx
}

// SetSharedBy records a change of the sharedBy attribute of the node at pos.
func (tx *Transaction) SetSharedBy(pos int, by *UserRef) *Transaction {
	var ref *UserRef
	if by != nil {
		cp := *by
		ref = &cp
	}
	tx.steps = append(tx.steps, step{kind: stepSharedBy, pos: pos, by: ref})
	return tx
}

// Len returns the number of recorded steps.
func (tx *Transaction) Len() int {
	return len(tx.steps)
}

// Apply runs every step on a deep copy of the document. If any step fails
// no document is returned.
func (tx *Transaction) Apply() (*Document, error) {
	out := tx.doc.Clone()
	for i, s := range tx.steps {
		node, _ := out.NodeAt(s.pos)
		if node == nil {
			return nil, fmt.Errorf("step %d: %w: %d", i, ErrInvalidPosition, s.pos)
		}
		if node.Share == nil {
			return nil, fmt.Errorf("step %d: %w: %s", i, ErrNotShareable, node.Kind)
		}
		switch s.kind {
		case stepShared:
			node.Share.Shared = s.shared
		case stepSharedBy:
			node.Share.SharedBy = s.by
		}
	}
	return out, nil
}
