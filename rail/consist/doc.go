// Package consist provides the core rail consist model for Railyard.
//
// The consist package implements the structural rules of a train:
//   - Doubly-linked wagon sequences and their link primitives
//   - Locomotive pulling-capacity limits
//   - Train-level policy (type homogeneity, capacity, membership)
//   - Attach, insert, split, move and reverse operations
//   - Yard fixture loading and validation
//
// Core Types:
//
// Wagon is a node in a doubly-linked sequence and exposes the low-level
// link primitives. Train anchors at most one sequence behind a Locomotive
// and implements all consist-level operations by composing the Wagon
// primitives. YardConfig describes a complete yard loaded from JSON,
// materialized into a Yard of named trains and an unassigned wagon pool.
//
// Usage:
//
//	engine := consist.NewLocomotive(1, 5)
//	train := consist.NewTrain(engine, "Amsterdam", "Paris")
//
//	w := consist.NewFreightWagon(10, 2000)
//	if !train.AttachToRear(w) {
//		// rejected: capacity, type mismatch or duplicate id
//	}
//
// Invariants:
//
// After every exported operation the doubly-linked topology holds: a
// wagon's successor points back at it, its predecessor points forward at
// it, sequences are acyclic, and a Train anchors only at a true head.
// Train mutators are all-or-nothing and report policy rejections through
// their boolean result; only direct misuse of the Wagon link primitives
// produces an error.
package consist
