// Package force implements the force-directed layout engine: the nested blob
// containment force, selection-driven forces, the generic charge/collision/
// link companions, and a tick-based simulation runner.
//
// # Model
//
// A [Force] holds a reference to the live node slice (established by
// Initialize) and on each Apply(alpha) call mutates node velocities or
// positions in place. Alpha is the simulation temperature in (0, 1], decaying
// toward zero over a run. Forces never copy nodes; multiple forces registered
// on one [Simulation] operate on the same underlying objects in registration
// order, once per tick.
//
// # Containment
//
// [VoronoiContainmentForce] keeps each group's nodes inside its own blob
// territory and keeps distinct blobs apart. Its per-tick work is four ordered
// stages: centroid/radius aggregation, alpha-dependent centroid attraction,
// alpha-independent inter-group separation, and boundary-margin straggler
// correction. The split between soft (cooling) attraction and hard
// (alpha-independent) separation keeps blob shapes organic while
// guaranteeing that two groups never visually merge, even after the
// simulation has cooled. [NewNestedBlobForce] derives one containment force
// per nesting level with tighter parameters for inner levels.
//
// # Selection forces
//
// [RadialForce] arranges a selected node's BFS neighborhood on concentric
// depth rings. [ChainCentroidForce] gathers the connecting chain of a
// multi-node selection around its centroid. Both are for ungrouped datasets
// only: in blob mode the containment force governs position, and the caller
// must not register selection forces alongside it. The two families fight
// each other and eject nodes from their blobs when combined.
//
// # Error handling
//
// Nodes with non-finite positions are skipped by every stage; a malformed
// node never aborts a tick.
package force
