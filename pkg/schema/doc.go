// Package schema defines the declarative field list that drives both
// rendering and validation of a form. Schemas are built once, checked for
// duplicate names, and are read-only afterwards; accessors hand out copies.
//
// Schemas can be declared in Go, loaded from YAML documents, or derived from
// an OpenAPI operation request body.
package schema
