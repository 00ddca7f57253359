package document

import "fmt"

// Action names a shared-content command.
type Action string

const (
	ActionSet    Action = "set"
	ActionUnset  Action = "unset"
	ActionToggle Action = "toggle"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionSet, ActionUnset, ActionToggle:
		return true
	}
	return false
}

// SetShared marks every shareable block touched by sel as shared. When actor
// is non-nil it is stamped as sharedBy. It returns the updated copy and true,
// or nil and false when the selection has no shareable block.
func SetShared(doc *Document, sel Selection, schema *Schema, actor *UserRef) (*Document, bool) {
	targets := CollectShareableBlocks(doc, sel.From, sel.To, schema)
	if len(targets) == 0 {
		return nil, false
	}
	return applyShared(doc, targets, true, actor)
}

// UnsetShared clears the shared flag on every shareable block touched by sel.
// sharedBy is left as it was.
func UnsetShared(doc *Document, sel Selection, schema *Schema) (*Document, bool) {
	targets := CollectShareableBlocks(doc, sel.From, sel.To, schema)
	if len(targets) == 0 {
		return nil, false
	}
	return applyShared(doc, targets, false, nil)
}

// ToggleShared unshares every target when at least one of them is shared and
// shares every target otherwise.
func ToggleShared(doc *Document, sel Selection, schema *Schema, actor *UserRef) (*Document, bool) {
	targets := CollectShareableBlocks(doc, sel.From, sel.To, schema)
	if len(targets) == 0 {
		return nil, false
	}
	anyShared := false
	for _, t := range targets {
		if t.Node.IsShared() {
			anyShared = true
			break
		}
	}
	if anyShared {
		return applyShared(doc, targets, false, nil)
	}
	return applyShared(doc, targets, true, actor)
}

// Apply runs the named action.
func Apply(doc *Document, action Action, sel Selection, schema *Schema, actor *UserRef) (*Document, bool, error) {
	switch action {
	case ActionSet:
		out, ok := SetShared(doc, sel, schema, actor)
		return out, ok, nil
	case ActionUnset:
		out, ok := UnsetShared(doc, sel, schema)
		return out, ok, nil
	case ActionToggle:
		out, ok := ToggleShared(doc, sel, schema, actor)
		return out, ok, nil
	default:
		return nil, false, fmt.Errorf("unknown share action %q", action)
	}
}

func applyShared(doc *Document, targets []Target, shared bool, actor *UserRef) (*Document, bool) {
	tx := NewTransaction(doc)
	for _, t := range targets {
		tx.SetShared(t.Pos, shared)
		if shared && actor != nil {
			tx.SetSharedBy(t.Pos, actor)
		}
	}
	out, err := tx.Apply()
	if err != nil {
		// Targets come from the same document, so every step resolves.
		return nil, false
	}
	return out, true
}
