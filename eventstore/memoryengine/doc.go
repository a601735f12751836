// Package memoryengine provides an in-memory implementation of the circulation journal
// used for tests, the report CLI, and ephemeral environments.
//
// Filters are evaluated with eventstore.Filter.Matches against the decoded payloads,
// so results match the SQL engines for string payload values.
package memoryengine
