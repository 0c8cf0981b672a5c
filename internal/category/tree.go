package category

// Node is one entry of the derived category hierarchy.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Count    int     `json:"count"` // products at or below this node
	Children []*Node `json:"children,omitempty"`
}

// BuildTree derives the category hierarchy from product category strings.
// Nodes keep first-appearance order at every level; empty categories are skipped.
func BuildTree(paths []string) []*Node {
	var roots []*Node
	index := make(map[string]*Node)

	for _, raw := range paths {
		p := Parse(raw)
		if p.IsRoot() {
			continue
		}

		siblings := &roots
		for depth := range p {
			key := p[:depth+1].String()
			node, ok := index[key]
			if !ok {
				node = &Node{Name: p[depth], Path: key}
				index[key] = node
				*siblings = append(*siblings, node)
			}
			node.Count++
			siblings = &node.Children
		}
	}

	return roots
}

// Find returns the node at path, or nil.
func Find(roots []*Node, path string) *Node {
	p := Parse(path)
	nodes := roots
	var found *Node
	for _, seg := range p {
		found = nil
		for _, n := range nodes {
			if n.Name == seg {
				found = n
				break
			}
		}
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}
