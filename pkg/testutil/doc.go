// Package testutil provides utilities for testing locfold components.
//
// Key components:
//   - TestEnvironment: a resource root on either an in-memory or a real
//     filesystem, with cleanup handled by the test
//   - FileTree: declarative description of a locale tree
//   - FaultFS: a types.FS wrapper that injects errors per operation and path
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when behavior depends on the operating system, such as
//     permission bits or symlinks
//   - All test data should be defined inline, not in external files
package testutil
