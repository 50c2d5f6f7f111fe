package rtree

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/npillmayer/rtree/geom"
)

// NodeInfo describes a node of the tree, as reported by Nodes.
type NodeInfo struct {
	Depth   int // 0 for the root
	Leaf    bool
	Entries int      // number of entries or branches
	Box     geom.Box // covering box of the node
}

// Nodes iterates over the nodes of the tree in depth-first pre-order (for
// debugging purposes). The tree must not be modified during iteration.
func (t *Tree[V]) Nodes() iter.Seq[NodeInfo] {
	type frame struct {
		node  treeNode[V]
		depth int
	}
	return func(yield func(NodeInfo) bool) {
		if t.root == nil {
			return
		}
		stack := []frame{{node: t.root}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			info := NodeInfo{
				Depth:   f.depth,
				Leaf:    f.node.isLeaf(),
				Entries: f.node.size(),
				Box:     f.node.bounds(),
			}
			if !yield(info) {
				return
			}
			if n, ok := f.node.(*innerNode[V]); ok {
				for i := len(n.branches) - 1; i >= 0; i-- {
					stack = append(stack, frame{node: n.branches[i].child, depth: f.depth + 1})
				}
			}
		}
	}
}

type nodeids[V any] struct {
	idTable map[treeNode[V]]int
	max     int
}

func newtable[V any]() nodeids[V] {
	return nodeids[V]{
		idTable: make(map[treeNode[V]]int),
		max:     1,
	}
}

func (ids *nodeids[V]) alloc(node treeNode[V]) int {
	if id := ids.idTable[node]; id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Dot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes). Leaves are labeled with their entry boxes, inner
// nodes with the boxes of their subtrees.
func (t *Tree[V]) Dot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("strict digraph {\n")
	bw.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	if t.root != nil {
		ids := newtable[V]()
		var nodelist, edgelist []string
		stack := []treeNode[V]{t.root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			id := ids.alloc(node)
			switch n := node.(type) {
			case *leafNode[V]:
				label := fmt.Sprintf("%d entries", len(n.entries))
				for _, e := range n.entries {
					label += "\\n" + e.box.String()
				}
				nodelist = append(nodelist, fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", id, label, nodeDotStyles(true)))
			case *innerNode[V]:
				nodelist = append(nodelist, fmt.Sprintf("\t\"%d\" [label=\"%d\" %s];\n", id, len(n.branches), nodeDotStyles(false)))
				for i := len(n.branches) - 1; i >= 0; i-- {
					br := n.branches[i]
					edgelist = append(edgelist, fmt.Sprintf("\t\"%d\" -> \"%d\" [label=\"%s\"];\n",
						id, ids.alloc(br.child), br.box))
					stack = append(stack, br.child)
				}
			}
		}
		for _, s := range nodelist {
			bw.WriteString(s)
		}
		for _, s := range edgelist {
			bw.WriteString(s)
		}
	}
	bw.WriteString("}\n")
	if err := bw.Flush(); err != nil {
		tracer().Errorf("rtree DOT: %s", err.Error())
		return err
	}
	return nil
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box,fillcolor=\"#CCDDFF\""
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
