package force

import (
	"math"
	"testing"

	"github.com/matzehuels/codemap/pkg/graph"
)

// recordingForce captures the order and alpha of Apply calls.
type recordingForce struct {
	name   string
	calls  *[]string
	alphas []float64
}

func (f *recordingForce) Initialize([]*graph.Node) {}
func (f *recordingForce) Apply(alpha float64) {
	*f.calls = append(*f.calls, f.name)
	f.alphas = append(f.alphas, alpha)
}

func placedNode(id string, x, y float64) *graph.Node {
	n := graph.NewNode(id)
	n.X, n.Y = x, y
	return n
}

func TestForcesRunInRegistrationOrder(t *testing.T) {
	var calls []string
	sim := NewSimulation(nil)
	sim.AddForce("first", &recordingForce{name: "first", calls: &calls})
	sim.AddForce("second", &recordingForce{name: "second", calls: &calls})
	sim.AddForce("third", &recordingForce{name: "third", calls: &calls})

	sim.Tick()

	want := []string{"first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestAddForceReplaceKeepsOrder(t *testing.T) {
	var calls []string
	sim := NewSimulation(nil)
	sim.AddForce("a", &recordingForce{name: "a1", calls: &calls})
	sim.AddForce("b", &recordingForce{name: "b", calls: &calls})
	sim.AddForce("a", &recordingForce{name: "a2", calls: &calls}) // Replace in place.

	sim.Tick()

	want := []string{"a2", "b"}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestRemoveForce(t *testing.T) {
	var calls []string
	sim := NewSimulation(nil)
	sim.AddForce("keep", &recordingForce{name: "keep", calls: &calls})
	sim.AddForce("drop", &recordingForce{name: "drop", calls: &calls})
	sim.RemoveForce("drop")
	sim.RemoveForce("never-existed")

	sim.Tick()

	if len(calls) != 1 || calls[0] != "keep" {
		t.Errorf("calls = %v, want [keep]", calls)
	}
	if sim.HasForce("drop") {
		t.Error("removed force still registered")
	}
}

func TestAlphaCools(t *testing.T) {
	sim := NewSimulation(nil)
	start := sim.Alpha()
	sim.Run(10)
	if sim.Alpha() >= start {
		t.Errorf("alpha did not cool: %v -> %v", start, sim.Alpha())
	}

	// The default schedule reaches alphaMin in roughly 300 ticks.
	ticks := sim.RunUntilCool(1000)
	total := 10 + ticks
	if total < 250 || total > 350 {
		t.Errorf("cooled after %d ticks, want ~300", total)
	}
}

func TestSetAlphaClamps(t *testing.T) {
	sim := NewSimulation(nil)
	sim.SetAlpha(5)
	if sim.Alpha() != 1 {
		t.Errorf("alpha = %v, want clamp to 1", sim.Alpha())
	}
	sim.SetAlpha(-1)
	if sim.Alpha() <= 0 {
		t.Errorf("alpha = %v, want positive floor", sim.Alpha())
	}
}

func TestTickIntegratesVelocity(t *testing.T) {
	n := placedNode("a", 0, 0)
	n.VX, n.VY = 10, 0

	sim := NewSimulation([]*graph.Node{n})
	sim.Tick()

	// Velocity decays by 0.6 before integration: x moves by 4.
	if math.Abs(n.X-4) > 1e-9 {
		t.Errorf("X = %v, want 4", n.X)
	}
	if math.Abs(n.VX-4) > 1e-9 {
		t.Errorf("VX = %v, want 4 after decay", n.VX)
	}
}

func TestTickSkipsUnplaced(t *testing.T) {
	n := graph.NewNode("ghost")
	n.VX = 100

	sim := NewSimulation([]*graph.Node{n})
	sim.Tick()

	if n.Placed() {
		t.Error("unplaced node gained a position from integration")
	}
}

func TestManyBodyRepels(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 10, 0)

	f := &ManyBody{}
	f.Initialize([]*graph.Node{a, b})
	f.Apply(1.0)

	if a.VX >= 0 || b.VX <= 0 {
		t.Errorf("default charge should repel: aVX=%v bVX=%v", a.VX, b.VX)
	}
}

func TestManyBodyCoincidentNodes(t *testing.T) {
	a := placedNode("a", 5, 5)
	b := placedNode("b", 5, 5)

	f := &ManyBody{}
	f.Initialize([]*graph.Node{a, b})
	f.Apply(1.0)

	for _, n := range []*graph.Node{a, b} {
		if math.IsNaN(n.VX) || math.IsNaN(n.VY) {
			t.Fatalf("coincident nodes produced NaN velocity: %+v", n)
		}
	}
	if a.VX == b.VX {
		t.Error("coincident nodes should be pushed apart")
	}
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	a := placedNode("a", 0, 0)
	a.Val = 10
	b := placedNode("b", 5, 0)
	b.Val = 10

	f := &Collision{}
	f.Initialize([]*graph.Node{a, b})
	f.Apply(1.0)

	gap := b.X - a.X
	if gap <= 5 {
		t.Errorf("overlapping circles not separated: gap = %v", gap)
	}
}

// TestCollapsePrevention is the end-to-end property: attraction plus
// collision must settle with nodes held apart, not collapsed onto the
// centroid.
func TestCollapsePrevention(t *testing.T) {
	var nodes []*graph.Node
	for i := 0; i < 6; i++ {
		n := graph.NewNode("n"+string(rune('a'+i)), "g")
		angle := float64(i) * math.Pi / 3
		n.X, n.Y = 5*math.Cos(angle), 5*math.Sin(angle)
		n.Val = 10
		nodes = append(nodes, n)
	}

	sim := NewSimulation(nodes)
	sim.AddForce("blob", NewNestedBlobForce(0))
	sim.AddForce("collide", &Collision{})
	sim.RunUntilCool(500)

	minDist := math.Inf(1)
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[j].X-nodes[i].X, nodes[j].Y-nodes[i].Y)
			if d < minDist {
				minDist = d
			}
		}
	}

	// Sum of radii is 20; the settled layout must hold most of that apart.
	if minDist < 16 {
		t.Errorf("nodes collapsed: min pairwise distance = %v, want >= 16", minDist)
	}
}

func TestLinkPullsTowardDistance(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 200, 0) // Far beyond the default distance of 60.
	e := &graph.Edge{Source: "a", Target: "b"}

	f := &Link{Edges: []*graph.Edge{e}}
	f.Initialize([]*graph.Node{a, b})
	f.Apply(1.0)

	if a.VX <= 0 || b.VX >= 0 {
		t.Errorf("long edge should contract: aVX=%v bVX=%v", a.VX, b.VX)
	}
}

func TestLinkSkipsSelfLoops(t *testing.T) {
	a := placedNode("a", 0, 0)
	e := &graph.Edge{Source: "a", Target: "a"}

	f := &Link{Edges: []*graph.Edge{e}}
	f.Initialize([]*graph.Node{a})
	f.Apply(1.0)

	if a.VX != 0 || a.VY != 0 {
		t.Error("self-loop contributed force")
	}
}
