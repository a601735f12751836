// Package shell provides conversion functions between circulation domain events and storable
// events, and the Recorder that journals the events a coordinator emits.
//
// This package implements the "imperative shell" pattern, handling the
// translation between the functional core (domain events) and the external
// storage layer (storable events). It manages event serialization, deserialization,
// metadata handling, and journal metrics.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
