// Package testutil provides shared test doubles for plugboot packages.
//
// Key components:
//   - MockRunner: testify mock of runner.Runner, keyed by command vector
//   - NewTestFS: in-memory filesystem backed by afero
//   - WriteFiles / ReadString: fixture helpers for memory filesystems
//
// Tests never spawn pip or git: every external call goes through a
// MockRunner so the expected command vectors are asserted exactly.
package testutil
