package accel

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// BuildReport summarizes a BVH's shape, used by callers that want to log
// or display how a scene's hierarchy turned out.
type BuildReport struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	Primitives int
}

// Report walks the node array and collects BuildReport statistics. A BVH
// built from zero primitives is a single sentinel node whose
// NumPrimitives and IndexOffset are both zero — indistinguishable from an
// inner node by that field alone — so it's treated as the one-leaf,
// zero-primitive tree it actually represents rather than walked.
func (b *BVH[T]) Report() BuildReport {
	r := BuildReport{Nodes: len(b.nodes), Primitives: len(b.prims)}
	if len(b.prims) == 0 {
		r.Leaves = 1
		return r
	}
	b.walkStats(0, 0, &r)
	return r
}

func (b *BVH[T]) walkStats(nodeIndex int32, depth int, r *BuildReport) {
	node := &b.nodes[nodeIndex]
	if depth > r.MaxDepth {
		r.MaxDepth = depth
	}
	if node.NumPrimitives > 0 {
		r.Leaves++
		return
	}
	b.walkStats(node.IndexOffset, depth+1, r)
	b.walkStats(node.IndexOffset+1, depth+1, r)
}

// StatsTable renders the build report as a two-column metric/value table.
func (r BuildReport) StatsTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"nodes", fmt.Sprintf("%d", r.Nodes)})
	table.Append([]string{"leaves", fmt.Sprintf("%d", r.Leaves)})
	table.Append([]string{"max depth", fmt.Sprintf("%d", r.MaxDepth)})
	table.Append([]string{"primitives", fmt.Sprintf("%d", r.Primitives)})
	table.Render()
}
