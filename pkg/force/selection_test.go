package force

import (
	"math"
	"testing"

	"github.com/matzehuels/codemap/pkg/graph"
)

func TestRadialForcePullsTowardDepthRing(t *testing.T) {
	center := placedNode("center", 0, 0)
	near := placedNode("near", 200, 0) // Depth 1, target radius 80.
	far := placedNode("far", 30, 0)    // Depth 2, target radius 160.

	f := &RadialForce{
		CenterID:  "center",
		Depths:    map[string]int{"near": 1, "far": 2},
		RadiusPer: 80,
	}
	f.Initialize([]*graph.Node{center, near, far})
	f.Apply(1.0)

	if near.VX >= 0 {
		t.Errorf("node outside its ring should pull inward: VX = %v", near.VX)
	}
	if far.VX <= 0 {
		t.Errorf("node inside its ring should push outward: VX = %v", far.VX)
	}
	if center.VX != 0 || center.VY != 0 {
		t.Error("center node must not move itself")
	}
}

func TestRadialForceSkipsNodesWithoutDepth(t *testing.T) {
	center := placedNode("center", 0, 0)
	stranger := placedNode("stranger", 500, 0)

	f := &RadialForce{CenterID: "center", Depths: map[string]int{}, RadiusPer: 80}
	f.Initialize([]*graph.Node{center, stranger})
	f.Apply(1.0)

	if stranger.VX != 0 {
		t.Error("node outside the BFS neighborhood should be untouched")
	}
}

func TestRadialForceMissingCenter(t *testing.T) {
	n := placedNode("a", 10, 10)
	f := &RadialForce{CenterID: "ghost", Depths: map[string]int{"a": 1}, RadiusPer: 80}
	f.Initialize([]*graph.Node{n})
	f.Apply(1.0)

	if n.VX != 0 || n.VY != 0 {
		t.Error("force with unresolved center should be a no-op")
	}
}

func TestRadialForceEquilibrium(t *testing.T) {
	center := placedNode("center", 0, 0)
	onRing := placedNode("onRing", 80, 0)

	f := &RadialForce{CenterID: "center", Depths: map[string]int{"onRing": 1}, RadiusPer: 80}
	f.Initialize([]*graph.Node{center, onRing})
	f.Apply(1.0)

	if math.Abs(onRing.VX) > 1e-12 {
		t.Errorf("node already on its ring should feel no pull: VX = %v", onRing.VX)
	}
}

func TestChainCentroidForceGathersChain(t *testing.T) {
	s1 := placedNode("s1", -100, 0)
	s2 := placedNode("s2", 100, 0)
	mid := placedNode("mid", 0, 300) // On the chain, far from the centroid.

	f := &ChainCentroidForce{
		Selected: []string{"s1", "s2"},
		Chain:    []string{"s1", "mid", "s2"},
	}
	f.Initialize([]*graph.Node{s1, s2, mid})
	f.Apply(1.0)

	// Selection centroid is (0, 0); mid should be pulled down toward it.
	if mid.VY >= 0 {
		t.Errorf("chain node should pull toward the selection centroid: VY = %v", mid.VY)
	}
	wantVY := (0 - 300.0) * chainStrength
	if math.Abs(mid.VY-wantVY) > 1e-9 {
		t.Errorf("VY = %v, want %v", mid.VY, wantVY)
	}
}

func TestChainCentroidForceNeedsTwoPlaced(t *testing.T) {
	s1 := placedNode("s1", 0, 0)
	s2 := graph.NewNode("s2") // Unplaced.
	mid := placedNode("mid", 50, 50)

	f := &ChainCentroidForce{
		Selected: []string{"s1", "s2"},
		Chain:    []string{"mid"},
	}
	f.Initialize([]*graph.Node{s1, s2, mid})
	f.Apply(1.0)

	if mid.VX != 0 || mid.VY != 0 {
		t.Error("chain force with fewer than two placed selections should be a no-op")
	}
}
