// Package cli provides the interactive admin client for the memorial
// content backend.
//
// It wires configuration, the local SQLite store, the REST gateway and the
// content services behind a small REPL. A typical session selects an entity
// with "use", pages and filters the list, and opens the editing form with
// "create" or "edit". Every translatable field is asked for in English,
// Tamil and Sinhala.
//
// Failures never end the session: mutations report "! ..." notices and list
// loads show the error inline above an empty table.
package cli
