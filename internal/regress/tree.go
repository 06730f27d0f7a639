package regress

import "sort"

// treeNode is one node of a fitted regression tree. Nodes are stored in a
// flat slice so the tree serialises to JSON without recursion; children are
// indices into that slice. Feature == leafMarker marks a leaf.
type treeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Value     float64 `json:"v"`
}

const leafMarker = -1

// regressionTree is a CART tree fitted with variance-reduction splits:
// exhaustive threshold scan per feature, unbounded depth, leaves of one
// sample allowed.
type regressionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// predict walks the tree for one (already scaled) feature vector.
func (t *regressionTree) predict(v []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature == leafMarker {
			return n.Value
		}
		if v[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// treeGrower accumulates nodes and per-feature impurity decrease while
// fitting one tree.
type treeGrower struct {
	X          [][]float64
	y          []float64
	nodes      []treeNode
	importance []float64
}

// grow fits a tree on the sample subset identified by idx and returns it
// together with the accumulated per-feature impurity decrease.
func growTree(X [][]float64, y []float64, idx []int, numFeatures int) (*regressionTree, []float64) {
	g := &treeGrower{X: X, y: y, importance: make([]float64, numFeatures)}
	g.build(idx)
	return &regressionTree{Nodes: g.nodes}, g.importance
}

// build appends the subtree for idx and returns its node index.
func (g *treeGrower) build(idx []int) int {
	sum, sumSq := 0.0, 0.0
	for _, i := range idx {
		sum += g.y[i]
		sumSq += g.y[i] * g.y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	sse := sumSq - sum*sum/n

	self := len(g.nodes)
	g.nodes = append(g.nodes, treeNode{Feature: leafMarker, Value: mean})

	if len(idx) < 2 || sse <= 0 {
		return self
	}

	feature, threshold, gain, ok := g.bestSplit(idx, sse)
	if !ok {
		return self
	}
	g.importance[feature] += gain

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if g.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	g.nodes[self].Feature = feature
	g.nodes[self].Threshold = threshold
	g.nodes[self].Left = g.build(left)
	g.nodes[self].Right = g.build(right)
	return self
}

// bestSplit scans every feature and every boundary between distinct sorted
// values, minimising the summed child SSE. Returns ok=false when no split
// separates the samples (all feature values identical).
func (g *treeGrower) bestSplit(idx []int, parentSSE float64) (feature int, threshold float64, gain float64, ok bool) {
	numFeatures := len(g.X[idx[0]])
	bestSSE := parentSSE

	order := make([]int, len(idx))
	for j := 0; j < numFeatures; j++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return g.X[order[a]][j] < g.X[order[b]][j] })

		// Incremental left/right sums over the sorted order.
		var sumL, sumSqL float64
		sumR, sumSqR := 0.0, 0.0
		for _, i := range order {
			sumR += g.y[i]
			sumSqR += g.y[i] * g.y[i]
		}

		for k := 0; k < len(order)-1; k++ {
			yi := g.y[order[k]]
			sumL += yi
			sumSqL += yi * yi
			sumR -= yi
			sumSqR -= yi * yi

			a, b := g.X[order[k]][j], g.X[order[k+1]][j]
			if a == b {
				continue
			}
			nL := float64(k + 1)
			nR := float64(len(order) - k - 1)
			sse := (sumSqL - sumL*sumL/nL) + (sumSqR - sumR*sumR/nR)
			if sse < bestSSE {
				bestSSE = sse
				feature = j
				threshold = (a + b) / 2
				ok = true
			}
		}
	}

	return feature, threshold, parentSSE - bestSSE, ok
}
