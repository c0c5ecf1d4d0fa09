// Package gut holds the read-only anatomical model displayed by the viewer.
//
// # Overview
//
// A model is an ordered list of regions and landmarks placed along one or two
// branches: branch 0 is the colon, branch 1 the ileum. Entities tagged with
// BranchBoth apply to both. Regions of one branch are contiguous and do not
// overlap; the model keeps them sorted by start within a branch, branch 0
// first.
//
// # Entities
//
// Region and Landmark share the Span record and both satisfy Entity, so code
// that only needs a position and a branch can treat them uniformly:
//
//	for _, e := range g.Entities() {
//	    span := e.Common()
//	    fmt.Println(e.Kind(), span.Name, span.StartPos)
//	}
//
// # Sub-models
//
// SubModel returns a memoized copy of one branch. With an origin the copy is
// shifted so the branch starts there, which is how branch 1 gets its own
// zero-based coordinates:
//
//	origin := 0.0
//	ileum := g.SubModel(gut.BranchExt, &origin)
//
// Sub-models share the parent's markers. Marker positions are stored in
// full-model coordinates and translated on the way in and out.
//
// # Region lookup
//
// FindRegionIndex returns the first region containing a position. Because
// regions are sorted with branch 0 first, a position covered by both branches
// resolves to branch 0 when the lookup is not restricted to one branch.
package gut
