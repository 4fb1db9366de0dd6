// Package depot loads and caches yard fixtures for Railyard.
//
// The depot package implements fleet.FixtureManager over a directory of
// JSON fixture files. Fixtures are validated on load, cached under a
// read-write lock, and a compiled-in minimal yard serves as the default
// when the directory provides none.
package depot
