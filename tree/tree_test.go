package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"succinct/parens"
	"succinct/tree"
)

// the test/tree.py literal tree:
//
//	                      1
//	                   /  |  \
//	                  2   7   8
//	                / | \     |
//	               3  4  5    9
//	                     |   / \
//	                     6  A   B
const literalTree = "((()()(()))()((()())))"

var (
	preorder  = []int{0, 1, 2, 4, 6, 7, 11, 13, 14, 15, 17}
	postorder = []int{2, 4, 7, 6, 1, 11, 15, 17, 14, 13, 0}
	leaforder = []int{2, 4, 7, 11, 15, 17}
)

func buildNav(t *testing.T) *tree.Navigator {
	t.Helper()
	enc, err := parens.NewFromString(literalTree)
	require.NoError(t, err)
	return tree.New(enc)
}

func pos(t *testing.T, nav *tree.Navigator, k int) int {
	t.Helper()
	n, err := nav.At(k)
	require.NoError(t, err)
	return n.Pos()
}

func TestRoot(t *testing.T) {
	nav := buildNav(t)
	require.Equal(t, 0, nav.Root().Pos())
}

func TestPreorderPostorderLeaforder(t *testing.T) {
	nav := buildNav(t)

	for k, p := range preorder {
		sel, err := nav.Select(k)
		require.NoError(t, err)
		require.Equal(t, p, sel)

		rk, err := nav.Rank(p)
		require.NoError(t, err)
		require.Equal(t, k, rk)
	}

	for k, p := range postorder {
		sel, err := nav.PostSelect(k)
		require.NoError(t, err)
		require.Equal(t, p, sel)

		rk, err := nav.PostRank(p)
		require.NoError(t, err)
		require.Equal(t, k, rk)
	}

	for k, p := range leaforder {
		sel, err := nav.LeafSelect(k)
		require.NoError(t, err)
		require.Equal(t, p, sel)

		rk, err := nav.LeafRank(p - 1)
		require.NoError(t, err)
		require.Equal(t, k-1, rk)

		rk, err = nav.LeafRank(p)
		require.NoError(t, err)
		require.Equal(t, k, rk)
	}
}

func TestIterate(t *testing.T) {
	nav := buildNav(t)

	pre, err := nav.Iterate(true)
	require.NoError(t, err)
	require.Equal(t, preorder, positions(pre))

	post, err := nav.Iterate(false)
	require.NoError(t, err)
	require.Equal(t, postorder, positions(post))

	rev, err := nav.Reversed()
	require.NoError(t, err)
	want := make([]int, len(preorder))
	for i, p := range preorder {
		want[len(preorder)-1-i] = p
	}
	require.Equal(t, want, positions(rev))
}

func positions(nodes []tree.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos()
	}
	return out
}

func TestIsLeaf(t *testing.T) {
	nav := buildNav(t)
	leafRanks := map[int]bool{3: true, 4: true, 6: true, 7: true, 10: true, 11: true}
	for k := 0; k < nav.Len(); k++ {
		n, err := nav.At(k)
		require.NoError(t, err)
		leaf, err := n.IsLeaf()
		require.NoError(t, err)
		require.Equal(t, leafRanks[k+1], leaf, "rank %d", k)
	}
}

func TestDepth(t *testing.T) {
	nav := buildNav(t)
	want := []int{1, 2, 3, 3, 3, 4, 2, 2, 3, 4, 4}
	for k, d := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, err := n.Depth()
		require.NoError(t, err)
		require.Equal(t, d, got, "node %d", k)
	}
}

func TestHeight(t *testing.T) {
	nav := buildNav(t)
	want := []int{3, 2, 0, 0, 1, 0, 0, 2, 1, 0, 0}
	for k, h := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, err := n.Height()
		require.NoError(t, err)
		require.Equal(t, h, got, "node %d", k)
	}
}

func TestParent(t *testing.T) {
	nav := buildNav(t)
	want := []int{-1, 0, 1, 1, 1, 6, 0, 0, 13, 14, 14}
	for k, p := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		parent, ok, err := n.Parent()
		require.NoError(t, err)
		if p == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.True(t, ok)
		require.Equal(t, p, parent.Pos())
	}
}

func TestDegree(t *testing.T) {
	nav := buildNav(t)
	want := []int{3, 3, 0, 0, 1, 0, 0, 1, 2, 0, 0}
	for k, d := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, err := n.Degree()
		require.NoError(t, err)
		require.Equal(t, d, got, "node %d", k)
	}
}

func TestSize(t *testing.T) {
	nav := buildNav(t)
	want := []int{11, 5, 1, 1, 2, 1, 1, 4, 3, 1, 1}
	for k, s := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, err := n.Size()
		require.NoError(t, err)
		require.Equal(t, s, got, "node %d", k)
	}
}

func TestNumLeaves(t *testing.T) {
	nav := buildNav(t)
	want := []int{6, 3, 1, 1, 1, 1, 1, 2, 2, 1, 1}
	for k, cnt := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, err := n.NumLeaves()
		require.NoError(t, err)
		require.Equal(t, cnt, got, "node %d", k)
	}
}

func TestChildren(t *testing.T) {
	nav := buildNav(t)
	want := [][]int{
		{1, 11, 13},
		{2, 4, 6},
		{},
		{},
		{7},
		{},
		{},
		{14},
		{15, 17},
		{},
		{},
	}
	for k, kids := range want {
		n, err := nav.At(k)
		require.NoError(t, err)
		children, err := n.Children()
		require.NoError(t, err)
		require.Equal(t, kids, positions(children), "node %d", k)
	}
}

func TestSiblings(t *testing.T) {
	nav := buildNav(t)
	next := []int{-1, 11, 4, 6, -1, -1, 13, -1, -1, 17, -1}
	prev := []int{-1, -1, -1, 2, 4, -1, 1, 11, -1, -1, 15}

	for k, want := range next {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.NextSibling()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.True(t, ok)
		require.Equal(t, want, got.Pos())
	}
	for k, want := range prev {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.PrevSibling()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.True(t, ok)
		require.Equal(t, want, got.Pos())
	}
}

func TestAncestor(t *testing.T) {
	nav := buildNav(t)
	cases := [][][2]int{
		{{1, -1}, {0, 0}},
		{{2, -1}, {1, 0}, {0, 1}},
		{{3, -1}, {2, 0}, {1, 1}, {0, 2}},
		{{3, -1}, {2, 0}, {1, 1}, {0, 4}},
		{{3, -1}, {2, 0}, {1, 1}, {0, 6}},
		{{4, -1}, {3, 0}, {2, 1}, {1, 6}, {0, 7}},
		{{2, -1}, {1, 0}, {0, 11}},
		{{2, -1}, {1, 0}, {0, 13}},
		{{3, -1}, {2, 0}, {1, 13}, {0, 14}},
		{{4, -1}, {3, 0}, {2, 13}, {1, 14}, {0, 15}},
		{{4, -1}, {3, 0}, {2, 13}, {1, 14}, {0, 17}},
	}
	for k, tcs := range cases {
		n, err := nav.At(k)
		require.NoError(t, err)
		for _, tc := range tcs {
			d, want := tc[0], tc[1]
			got, ok, err := n.Ancestor(d)
			require.NoError(t, err)
			if want == -1 {
				require.False(t, ok, "node %d ancestor(%d)", k, d)
				continue
			}
			require.True(t, ok)
			require.Equal(t, want, got.Pos(), "node %d ancestor(%d)", k, d)
		}
	}
}

func TestLevelNextPrev(t *testing.T) {
	nav := buildNav(t)
	next := []int{-1, 11, 4, 6, 14, 15, 13, -1, -1, 17, -1}
	prev := []int{-1, -1, -1, 2, 4, -1, 1, 11, 6, 7, 15}

	for k, want := range next {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.LevelNext()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.True(t, ok)
		require.Equal(t, want, got.Pos())
	}
	for k, want := range prev {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.LevelPrev()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.True(t, ok)
		require.Equal(t, want, got.Pos())
	}
}

func TestDeepestAndExtremalLeaves(t *testing.T) {
	nav := buildNav(t)
	deepest := []int{7, 7, -1, -1, 7, -1, -1, 15, 15, -1, -1}
	leftmost := []int{2, 2, -1, -1, 7, -1, -1, 15, 15, -1, -1}
	rightmost := []int{17, 7, -1, -1, 7, -1, -1, 17, 17, -1, -1}

	for k, want := range deepest {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.DeepestNode()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.Equal(t, want, got.Pos())
	}
	for k, want := range leftmost {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.LeftmostLeaf()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.Equal(t, want, got.Pos())
	}
	for k, want := range rightmost {
		n, err := nav.At(k)
		require.NoError(t, err)
		got, ok, err := n.RightmostLeaf()
		require.NoError(t, err)
		if want == -1 {
			require.False(t, ok, "node %d", k)
			continue
		}
		require.Equal(t, want, got.Pos())
	}
}

func TestLCA(t *testing.T) {
	nav := buildNav(t)
	n := nav.Len()
	rankOf := func(pos int) int {
		r, err := nav.Rank(pos)
		require.NoError(t, err)
		return r
	}

	want := map[[2]int]int{}
	// reconstruct the expected table from parent links directly,
	// grounded on the ancestor chains already verified above.
	ancestorsOf := func(k int) []int {
		chain := []int{k}
		node, err := nav.At(k)
		require.NoError(t, err)
		for {
			p, ok, err := node.Parent()
			require.NoError(t, err)
			if !ok {
				break
			}
			chain = append(chain, rankOf(p.Pos()))
			node = p
		}
		return chain
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			ai, aj := ancestorsOf(i), ancestorsOf(j)
			seen := map[int]bool{}
			for _, a := range ai {
				seen[a] = true
			}
			for _, a := range aj {
				if seen[a] {
					want[[2]int{i, j}] = a
					break
				}
			}
		}
	}

	for ij, lca := range want {
		ni, err := nav.At(ij[0])
		require.NoError(t, err)
		nj, err := nav.At(ij[1])
		require.NoError(t, err)

		got, err := ni.LCA(nj)
		require.NoError(t, err)
		require.Equal(t, lca, rankOf(got.Pos()), "lca(%d,%d)", ij[0], ij[1])

		got, err = nj.LCA(ni)
		require.NoError(t, err)
		require.Equal(t, lca, rankOf(got.Pos()), "lca(%d,%d) symmetric", ij[1], ij[0])
	}
}

func TestLevelLeftmostRightmost(t *testing.T) {
	nav := buildNav(t)
	leftmost := map[int]int{1: 0, 2: 1, 3: 2, 4: 7}
	rightmost := map[int]int{1: 0, 2: 13, 3: 14, 4: 17}

	for _, d := range []int{0, 5} {
		_, ok, err := nav.LevelLeftmost(d)
		require.NoError(t, err)
		require.False(t, ok, "depth %d", d)
		_, ok, err = nav.LevelRightmost(d)
		require.NoError(t, err)
		require.False(t, ok, "depth %d", d)
	}
	for d, want := range leftmost {
		got, ok, err := nav.LevelLeftmost(d)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got.Pos(), "depth %d", d)
	}
	for d, want := range rightmost {
		got, ok, err := nav.LevelRightmost(d)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got.Pos(), "depth %d", d)
	}
}
