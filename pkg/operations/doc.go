// Package operations wraps the package manager and the source-control tool
// in idempotent, outcome-checked operations.
//
// Both operations probe their tool exactly once at construction time. A probe
// that prints nothing means the tool is missing, which is a fatal
// TOOL_MISSING error. After that, each call runs at most one query and one
// mutating command, and decides success by phrase matching on the output
// (see pkg/outcome), never by exit status.
//
// Failures are split in two tiers:
//   - PackageOperation reports a failed install or remove to the user and
//     returns false; the caller decides whether that aborts the run.
//   - SourceControlOperation treats a failed clone as fatal and returns a
//     CLONE_FAILED error carrying the tool output.
package operations
