// Package eval judges layout quality through declarative "virtual user"
// archetypes.
//
// An [Archetype] is pure data: a named audience goal plus ordered threshold
// constraints over the pkg/metrics fact bag ("a quick glancer needs
// blobSeparation.minClearance > 20"). [CheckUser] evaluates one archetype
// against one fact snapshot and reports pass/fail with severity-ranked
// failures and near-misses; [CheckAllUsers] runs every archetype for an
// at-a-glance comparison.
//
// Missing fact paths and unknown operators fail closed: a measurement that
// was never taken must never read as passing.
//
// Archetypes are either compiled in ([BuiltinArchetypes]) or loaded from a
// TOML file ([LoadArchetypes]); both forms validate identically.
package eval
