package force

import (
	"math"

	"github.com/matzehuels/codemap/pkg/graph"
)

// Force is a stateful layout force.
//
// Initialize establishes the force's reference to the live node slice without
// copying. Apply is invoked once per tick with the current simulation
// temperature alpha in (0, 1] and mutates node velocities and/or positions
// in place.
type Force interface {
	Initialize(nodes []*graph.Node)
	Apply(alpha float64)
}

// Simulation default cooling parameters, matching the d3-force schedule the
// interactive renderer uses: alpha decays from 1 toward alphaMin over ~300
// ticks, velocities are damped by velocityDecay each tick.
const (
	defaultAlphaMin      = 0.001
	defaultAlphaTarget   = 0.0
	defaultVelocityDecay = 0.6
	defaultCoolingTicks  = 300
)

// Simulation drives a set of named forces over a node slice, one synchronous
// tick at a time. It is single-threaded by design: no tick begins before the
// previous tick's mutations are complete.
type Simulation struct {
	nodes []*graph.Node

	names  []string
	forces map[string]Force

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64
	ticks         int
}

// NewSimulation creates a simulation over nodes with the default cooling
// schedule and no forces.
func NewSimulation(nodes []*graph.Node) *Simulation {
	return &Simulation{
		nodes:         nodes,
		forces:        make(map[string]Force),
		alpha:         1,
		alphaMin:      defaultAlphaMin,
		alphaDecay:    1 - math.Pow(defaultAlphaMin, 1.0/defaultCoolingTicks),
		alphaTarget:   defaultAlphaTarget,
		velocityDecay: defaultVelocityDecay,
	}
}

// AddForce registers a force under a name, replacing any force previously
// registered under that name but keeping its position in the invocation
// order. New names are appended: forces run in registration order each tick,
// so register containment before anything that should see settled centroids.
func (s *Simulation) AddForce(name string, f Force) *Simulation {
	if _, exists := s.forces[name]; !exists {
		s.names = append(s.names, name)
	}
	s.forces[name] = f
	f.Initialize(s.nodes)
	return s
}

// RemoveForce deactivates the named force between ticks. Removing a
// containment level that no longer exists in the dataset must happen before
// the next tick so it does not operate on stale group keys.
func (s *Simulation) RemoveForce(name string) {
	if _, exists := s.forces[name]; !exists {
		return
	}
	delete(s.forces, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// HasForce reports whether a force is registered under name.
func (s *Simulation) HasForce(name string) bool {
	_, ok := s.forces[name]
	return ok
}

// Alpha returns the current simulation temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha sets the simulation temperature, clamped to (0, 1].
// Use this to reheat after a dataset or selection change.
func (s *Simulation) SetAlpha(a float64) {
	if a > 1 {
		a = 1
	}
	if a <= 0 {
		a = s.alphaMin
	}
	s.alpha = a
}

// Ticks returns the number of ticks executed so far.
func (s *Simulation) Ticks() int { return s.ticks }

// Tick advances the simulation by one step: cools alpha, applies every
// registered force in order, then integrates velocities into positions with
// velocity decay. Nodes without a finite position are skipped entirely.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, name := range s.names {
		s.forces[name].Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if !n.Placed() {
			continue
		}
		n.VX *= 1 - s.velocityDecay
		n.VY *= 1 - s.velocityDecay
		n.X += n.VX
		n.Y += n.VY
	}
	s.ticks++
}

// Run executes n ticks.
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// RunUntilCool ticks until alpha falls below alphaMin or maxTicks is
// reached, and returns the number of ticks executed.
func (s *Simulation) RunUntilCool(maxTicks int) int {
	start := s.ticks
	for s.alpha >= s.alphaMin && s.ticks-start < maxTicks {
		s.Tick()
	}
	return s.ticks - start
}
