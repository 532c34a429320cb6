// Package preflight provides readiness checks for the filesystem paths mriseq
// reads and writes.
//
// The CLI "mriseq config validate" command runs RunAll and renders one status
// line per check. Checks are gated by the configured reference source: the CSV
// file is only checked for source "csv", the snapshot contents only for
// source "snapshot".
package preflight
