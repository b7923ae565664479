package gruptree

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Node is one node of a materialized hierarchy tree. Every node owns
// its children outright: reattaching the same child name under several
// parents yields independent copies, never shared substructure.
type Node struct {
	Name     string
	Children []*Node
}

// Forest folds a flat edge list into nested trees, one per root. Roots
// are the names that appear as a parent but never as a child. Children
// are sorted by name.
func Forest(edges []Edge) []*Node {
	children := make(map[string][]string)
	isChild := make(map[string]bool)
	for _, e := range edges {
		if !containsName(children[e.Parent], e.Child) {
			children[e.Parent] = append(children[e.Parent], e.Child)
		}
		isChild[e.Child] = true
	}

	var roots []string
	for _, parent := range maps.Keys(children) {
		if !isChild[parent] {
			roots = append(roots, parent)
		}
	}
	sort.Strings(roots)

	forest := make([]*Node, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, buildNode(root, children, map[string]bool{root: true}))
	}
	return forest
}

// buildNode copies the subtree under name by value. The path set guards
// against cycles from malformed decks.
func buildNode(name string, children map[string][]string, path map[string]bool) *Node {
	node := &Node{Name: name}
	names := append([]string(nil), children[name]...)
	sort.Strings(names)
	for _, child := range names {
		if path[child] {
			continue
		}
		path[child] = true
		node.Children = append(node.Children, buildNode(child, children, path))
		delete(path, child)
	}
	return node
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// FlattenForest converts a forest back into (child, parent) edges. The
// origin tag is not recoverable from a tree and is left empty.
func FlattenForest(forest []*Node) []Edge {
	var edges []Edge
	for _, root := range forest {
		edges = appendEdges(edges, root)
	}
	return edges
}

func appendEdges(edges []Edge, n *Node) []Edge {
	for _, child := range n.Children {
		edges = append(edges, Edge{Child: child.Name, Parent: n.Name})
		edges = appendEdges(edges, child)
	}
	return edges
}

// Names returns every node name in the forest.
func Names(forest []*Node) []string {
	seen := make(map[string]bool)
	for _, root := range forest {
		collectNames(seen, root)
	}
	names := maps.Keys(seen)
	sort.Strings(names)
	return names
}

func collectNames(seen map[string]bool, n *Node) {
	seen[n.Name] = true
	for _, child := range n.Children {
		collectNames(seen, child)
	}
}

// Render produces an indented text form of the tree, root first, each
// level indented two spaces.
func (n *Node) Render() string {
	var b strings.Builder
	renderNode(&b, n, 0)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Name)
	b.WriteByte('\n')
	for _, child := range n.Children {
		renderNode(b, child, depth+1)
	}
}
