// Package authz implements the record visibility and capability engine.
//
// It answers two questions that must always agree:
//
//   - CanView: may this principal see this one record?
//   - Filter: which subset of all records may this principal see?
//
// Both are derived from the same ordered rule groups over a principal's
// permission grants, the role reporting hierarchy, and the ownership
// relations carried on each record. The package is a pure evaluation
// layer: it holds no persistent state, performs no writes, and every
// failure mode (unknown principal, malformed grant, cyclic hierarchy,
// unresolvable reference) degrades to deny rather than erroring.
package authz
