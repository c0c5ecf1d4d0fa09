package gut

// NewSampleGut builds a small two-branch model used by tests across packages.
//
// Branch 0 (colon) covers [0, 1000] in four regions. Branch 1 (ileum) covers
// [900, 1400] in two regions, so it joins the colon at 900 when both share one
// coordinate space.
func NewSampleGut() *Gut {
	g := New(Info{ID: "sample", Name: "Sample gut", Species: "human"})

	g.AddRegion(Region{Span: Span{ID: "r1", Name: "Cecum", StartPos: 0, EndPos: 100, Branch: BranchMain, ExternalID: "UBERON:0001153"}})
	g.AddRegion(Region{Span: Span{ID: "r2", Name: "Ascending colon", StartPos: 100, EndPos: 400, Branch: BranchMain, ExternalID: "UBERON:0001156"}})
	g.AddRegion(Region{Span: Span{ID: "r3", Name: "Transverse colon", StartPos: 400, EndPos: 700, Branch: BranchMain}})
	g.AddRegion(Region{Span: Span{ID: "r4", Name: "Descending colon", StartPos: 700, EndPos: 1000, Branch: BranchMain}})
	g.AddRegion(Region{Span: Span{ID: "r5", Name: "Terminal ileum", StartPos: 900, EndPos: 1100, Branch: BranchExt}})
	g.AddRegion(Region{Span: Span{ID: "r6", Name: "Proximal ileum", StartPos: 1100, EndPos: 1400, Branch: BranchExt}})

	g.AddLandmark(Landmark{Span: Span{ID: "l1", Name: "hf", StartPos: 400, EndPos: 400, Branch: BranchMain}, Title: "Hepatic flexure", Position: 400, Type: LandmarkNormal})
	g.AddLandmark(Landmark{Span: Span{ID: "l2", Name: "pil", StartPos: 950, EndPos: 950, Branch: BranchMain}, Title: "pil", Position: 950, Type: LandmarkPseudo})
	g.AddLandmark(Landmark{Span: Span{ID: "l3", Name: "pp", StartPos: 1150, EndPos: 1200, Branch: BranchExt}, Title: "Peyer's patch", Position: 1150, Type: LandmarkNormal})
	g.AddLandmark(Landmark{Span: Span{ID: "l4", Name: "icv", StartPos: 900, EndPos: 900, Branch: BranchBoth}, Title: "Ileocecal valve", Position: 900, Type: LandmarkNormal})

	return g
}

// NewSingleBranchGut builds a colon-only model of the given length split in
// ten equal regions.
func NewSingleBranchGut(length float64) *Gut {
	g := New(Info{ID: "single", Name: "Colon only"})
	step := length / 10
	for i := 0; i < 10; i++ {
		start := float64(i) * step
		g.AddRegion(Region{Span: Span{
			ID:       "s" + string(rune('a'+i)),
			Name:     "Segment " + string(rune('A'+i)),
			StartPos: start,
			EndPos:   start + step,
			Branch:   BranchMain,
		}})
	}
	return g
}
