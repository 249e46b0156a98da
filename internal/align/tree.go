package align

import (
	"goalboard/internal/goalstore"
	"goalboard/internal/progress"
)

// Node is one objective placed in the alignment forest. Progress is the
// objective's own computed value; parents are containment only and never
// re-aggregate their children.
type Node struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Progress int                `json:"progress"`
	Light    progress.Light     `json:"light"`
	Owner    string             `json:"owner"`
	TeamID   string             `json:"team_id,omitempty"`
	GoalType goalstore.GoalType `json:"goal_type"`
	Children []*Node            `json:"children,omitempty"`
}

// BuildForest reconstructs the alignment forest from a flat objective list.
// Construction is an index map plus one forward pass: each node is placed
// exactly once, either under its resolved parent or in the root list. A
// parent id that does not resolve (true root, orphan, or self-reference)
// makes the node a root, and nodes sitting on a parent cycle are cut loose
// and promoted to roots afterwards, so malformed references degrade to
// top-level entries instead of crashing, looping, or dropping out of the
// forest. Child order follows input order.
func BuildForest(objectives []goalstore.Objective) []*Node {
	type entry struct {
		node     *Node
		parentID string
	}

	nodes := make(map[string]*Node, len(objectives))
	parentOf := make(map[string]string, len(objectives))
	ordered := make([]entry, 0, len(objectives))

	for _, obj := range objectives {
		// First definition of an id wins; duplicates are never re-placed.
		if _, exists := nodes[obj.ID]; exists {
			continue
		}
		pct := progress.ObjectiveProgress(obj)
		node := &Node{
			ID:       obj.ID,
			Title:    obj.Title,
			Progress: pct,
			Light:    progress.Classify(float64(pct)),
			Owner:    obj.OwnerID,
			TeamID:   obj.TeamID,
			GoalType: obj.GoalType,
		}
		nodes[obj.ID] = node
		parentOf[obj.ID] = obj.ParentID
		ordered = append(ordered, entry{node: node, parentID: obj.ParentID})
	}

	var roots []*Node
	for _, ent := range ordered {
		if ent.parentID == "" || ent.parentID == ent.node.ID {
			roots = append(roots, ent.node)
			continue
		}
		parent, ok := nodes[ent.parentID]
		if !ok {
			roots = append(roots, ent.node)
			continue
		}
		parent.Children = append(parent.Children, ent.node)
	}

	// A node whose parent chain loops back to itself sits on a reference
	// cycle: attached under its cycle parent it is unreachable from any
	// root, so it would silently vanish from the forest. Cut each cycle
	// member loose and promote it; descendants hanging off the cycle stay
	// attached and surface under the promoted roots.
	for _, ent := range ordered {
		if ent.parentID == "" || ent.parentID == ent.node.ID {
			continue
		}
		if !onParentCycle(ent.node.ID, parentOf) {
			continue
		}
		parent := nodes[ent.parentID]
		parent.Children = removeChild(parent.Children, ent.node)
		roots = append(roots, ent.node)
	}

	return roots
}

// onParentCycle reports whether following parent ids from id leads back to
// id. The walk is bounded by a seen set, never recursion.
func onParentCycle(id string, parentOf map[string]string) bool {
	seen := map[string]struct{}{id: {}}
	current := parentOf[id]
	for current != "" && current != id {
		if _, repeated := seen[current]; repeated {
			return false
		}
		seen[current] = struct{}{}
		current = parentOf[current]
	}
	return current == id
}

func removeChild(children []*Node, node *Node) []*Node {
	for i, child := range children {
		if child == node {
			return append(children[:i], children[i+1:]...)
		}
	}
	return children
}
