// Package preflight verifies the launcher's external collaborators: the
// engine runtime, the engine entry point, and the rules file.
//
// These checks run in two contexts:
//   - "broom run" evaluates CheckRuntime, CheckEngine, and CheckConfig in
//     that order and stops at the first failure; nothing is launched on a
//     failed check.
//   - "broom status" renders the full Report as a table without running
//     anything.
package preflight
