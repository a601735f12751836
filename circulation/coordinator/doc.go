// Package coordinator orchestrates the circulation rules against the library's shared
// collections of users, items, loans and holds.
//
// A System owns all four collections. Entities reference each other by identifier only,
// and whatever a rule needs from another collection is resolved here and passed in explicitly.
//
// The System is synchronous and does no I/O: callers serialize access themselves.
// Every successful mutation appends a domain event to an in-memory outbox,
// which an outer layer can drain with DrainEvents and journal.
package coordinator
