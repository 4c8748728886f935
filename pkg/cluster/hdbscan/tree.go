package hdbscan

import (
	"math"
	"sort"
)

// linkNode is one merge in the single-linkage dendrogram. Leaves are ids
// 0..n-1; internal nodes are n..2n-2 in merge order, so nodes[k] describes
// id n+k.
type linkNode struct {
	left, right int
	dist        float64
	size        int
}

// singleLinkage folds the sorted MST edges into a dendrogram with a
// union-find over component top nodes.
func singleLinkage(edges []mstEdge, n int) []linkNode {
	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		root := x
		for parent[root] != root {
			root = parent[root]
		}
		for parent[x] != root {
			parent[x], x = root, parent[x]
		}
		return root
	}

	nodes := make([]linkNode, 0, n-1)
	for _, e := range edges {
		ra, rb := find(e.a), find(e.b)
		id := n + len(nodes)
		nodes = append(nodes, linkNode{
			left:  ra,
			right: rb,
			dist:  e.w,
			size:  nodeSize(nodes, ra, n) + nodeSize(nodes, rb, n),
		})
		parent[ra] = id
		parent[rb] = id
	}
	return nodes
}

func nodeSize(nodes []linkNode, id, n int) int {
	if id < n {
		return 1
	}
	return nodes[id-n].size
}

// condEdge is one row of the condensed tree: child (a point id < n, or a
// cluster id >= n) leaving parent at density lambda.
type condEdge struct {
	parent, child int
	lambda        float64
	size          int
}

// condensedTree is the minClusterSize-condensed form of the dendrogram.
// Cluster ids start at n (the root); points keep their input ids.
type condensedTree struct {
	n          int
	root       int
	maxCluster int
	edges      []condEdge

	birth    map[int]float64 // cluster id -> lambda at which it appears
	parentOf map[int]int     // cluster id -> parent cluster id
	children map[int][]int   // cluster id -> child cluster ids
}

// condense walks the dendrogram top-down. A child subtree smaller than
// minClusterSize "falls out" of its parent cluster point by point; a split
// into two large-enough subtrees creates two new clusters. A cluster that
// merely sheds points keeps its identity.
func condense(nodes []linkNode, n, minClusterSize int) *condensedTree {
	ct := &condensedTree{
		n:          n,
		root:       n,
		maxCluster: n,
		birth:      map[int]float64{},
		parentOf:   map[int]int{},
		children:   map[int][]int{},
	}

	relabel := map[int]int{2*n - 2: n}
	queue := []int{2*n - 2}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		ln := nodes[node-n]
		lambda := math.Inf(1)
		if ln.dist > 0 {
			lambda = 1 / ln.dist
		}
		cur := relabel[node]
		lsize := nodeSize(nodes, ln.left, n)
		rsize := nodeSize(nodes, ln.right, n)

		switch {
		case lsize >= minClusterSize && rsize >= minClusterSize:
			for _, child := range []int{ln.left, ln.right} {
				ct.maxCluster++
				relabel[child] = ct.maxCluster
				ct.edges = append(ct.edges, condEdge{cur, ct.maxCluster, lambda, nodeSize(nodes, child, n)})
				ct.birth[ct.maxCluster] = lambda
				ct.parentOf[ct.maxCluster] = cur
				ct.children[cur] = append(ct.children[cur], ct.maxCluster)
				queue = append(queue, child)
			}
		case lsize < minClusterSize && rsize < minClusterSize:
			ct.dropLeaves(nodes, ln.left, cur, lambda)
			ct.dropLeaves(nodes, ln.right, cur, lambda)
		case lsize < minClusterSize:
			relabel[ln.right] = cur
			queue = append(queue, ln.right)
			ct.dropLeaves(nodes, ln.left, cur, lambda)
		default:
			relabel[ln.left] = cur
			queue = append(queue, ln.left)
			ct.dropLeaves(nodes, ln.right, cur, lambda)
		}
	}
	return ct
}

// dropLeaves records every point under the given dendrogram node as
// falling out of cluster parent at density lambda.
func (ct *condensedTree) dropLeaves(nodes []linkNode, node, parent int, lambda float64) {
	if node < ct.n {
		ct.edges = append(ct.edges, condEdge{parent, node, lambda, 1})
		return
	}
	ln := nodes[node-ct.n]
	ct.dropLeaves(nodes, ln.left, parent, lambda)
	ct.dropLeaves(nodes, ln.right, parent, lambda)
}

// stability sums, per cluster, how long each member persisted beyond the
// cluster's birth density.
func (ct *condensedTree) stability() map[int]float64 {
	stab := make(map[int]float64, ct.maxCluster-ct.n+1)
	for _, e := range ct.edges {
		stab[e.parent] += (e.lambda - ct.birth[e.parent]) * float64(e.size)
	}
	return stab
}

// selectClusters runs excess-of-mass selection bottom-up: a cluster is
// kept when its own stability beats the combined stability of its child
// clusters. The root is never selectable. When epsilon is positive,
// selected clusters born below that distance are replaced by their
// shallowest ancestor still below it.
func (ct *condensedTree) selectClusters(epsilon float64) map[int]bool {
	stab := ct.stability()
	selected := make(map[int]bool)

	for c := ct.maxCluster; c > ct.root; c-- {
		var childSum float64
		for _, ch := range ct.children[c] {
			childSum += stab[ch]
		}
		if stab[c] >= childSum {
			selected[c] = true
			for _, ch := range ct.children[c] {
				ct.unselect(ch, selected)
			}
		} else {
			stab[c] = childSum
		}
	}

	if epsilon > 0 {
		selected = ct.mergeByEpsilon(selected, epsilon)
	}
	return selected
}

func (ct *condensedTree) unselect(c int, selected map[int]bool) {
	delete(selected, c)
	for _, ch := range ct.children[c] {
		ct.unselect(ch, selected)
	}
}

// mergeByEpsilon replaces clusters born at distances finer than epsilon
// with the nearest ancestor born at or above it, then drops any selection
// shadowed by a selected ancestor.
func (ct *condensedTree) mergeByEpsilon(selected map[int]bool, epsilon float64) map[int]bool {
	ids := make([]int, 0, len(selected))
	for c := range selected {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	merged := make(map[int]bool)
	for _, c := range ids {
		if 1/ct.birth[c] >= epsilon {
			merged[c] = true
			continue
		}
		merged[ct.climb(c, epsilon)] = true
	}

	// A selected ancestor absorbs any selected descendant.
	out := make(map[int]bool, len(merged))
	for c := range merged {
		shadowed := false
		for p := ct.parentOf[c]; p != 0; p = ct.parentOf[p] {
			if merged[p] {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out[c] = true
		}
	}
	return out
}

// climb walks toward the root until the parent's birth distance reaches
// epsilon, stopping at the last cluster below the root.
func (ct *condensedTree) climb(c int, epsilon float64) int {
	for {
		parent, ok := ct.parentOf[c]
		if !ok || parent == ct.root {
			return c
		}
		if 1/ct.birth[parent] > epsilon {
			return parent
		}
		c = parent
	}
}

// labels assigns each point to its nearest selected ancestor cluster, or
// Noise. Selected clusters are renumbered densely in order of their first
// member point.
func (ct *condensedTree) labels(selected map[int]bool) []int {
	pointParent := make([]int, ct.n)
	for _, e := range ct.edges {
		if e.child < ct.n {
			pointParent[e.child] = e.parent
		}
	}

	labels := make([]int, ct.n)
	remap := make(map[int]int, len(selected))
	for i := 0; i < ct.n; i++ {
		c := pointParent[i]
		for c != ct.root && !selected[c] {
			c = ct.parentOf[c]
		}
		if !selected[c] {
			labels[i] = Noise
			continue
		}
		id, ok := remap[c]
		if !ok {
			id = len(remap)
			remap[c] = id
		}
		labels[i] = id
	}
	return labels
}
