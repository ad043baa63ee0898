// Package types defines the public data model and error taxonomy shared by
// every manifestkit package: record entities, typed errors with stable kinds,
// operation options, and the declarative edit request/summary structures.
package types
