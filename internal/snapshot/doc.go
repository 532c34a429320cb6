// Package snapshot keeps a SQLite copy of the protocol reference table.
//
// `mriseq table import` parses the configured CSV once and replaces the
// snapshot in a single transaction; later runs configured with
// reference.source = "snapshot" build their Classifier from it without
// touching the CSV. Rows keep their original order, so duplicate keys resolve
// exactly as they did in the source file. Writers serialize on a lock file
// next to the database.
package snapshot
