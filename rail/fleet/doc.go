// Package fleet provides the yard-operations service layer for Railyard.
//
// The fleet package wraps the consist core with named yard sessions and
// exposes the shunting operations a caller composes them from:
//   - Yard session lifecycle (create from fixture, list, delete)
//   - Attaching pooled wagons to trains at a position
//   - Moving single wagons and splitting tails between trains
//   - Reversing trains and describing their composition
//
// Architecture:
//
// Service is the main interface, implemented over a SessionManager (yard
// session registry, see package registry) and a FixtureManager (yard
// fixture loading, see package depot). All operations accept a
// context.Context. Policy rejections from the core surface as a
// ShuntResult with Applied set to false and a Reason; missing yards,
// trains or wagons are errors wrapping the package sentinels.
package fleet
