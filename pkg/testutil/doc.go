// Package testutil provides utilities for testing linkfarm components.
//
// Key components:
//   - Environment: a real, isolated filesystem in a temp directory holding
//     package trees, a target root and a store location
//   - FaultyFS: a types.FS wrapper that fails chosen operations on chosen paths
//   - Assertions on the resulting link farm (symlinks, directories, content)
//
// Usage guidelines:
//   - Tests run against the real filesystem under t.TempDir(); symlink
//     semantics are the thing under test and are not faked
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
