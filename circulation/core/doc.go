// Package core contains the circulation rules engine for
// item circulation in a public library.
//
// It models the lifecycle of library items, users, loans and holds: the
// per-item-type due-date policy, copy accounting, overdue fines, the loan
// renewal rules and the hold state machine. Everything in here is pure
// in-memory state with explicit error returns, no I/O and no locking.
//
// Entities only reference each other by identifier. Whatever a rule needs to
// inspect (e.g. the holds competing with a renewal) is passed in explicitly.
//
// Every state change the coordinator performs is also described by a domain event
// (ItemCheckedOut, ItemReturned, LoanRenewed, ...), which the shell can journal.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
