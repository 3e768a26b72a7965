// Package store provides the observable key/value container behind a form:
// the current committed values plus per-field error messages. Stores are
// dumb; validation lives in the controller. A store may be private to one
// controller or shared between sibling surfaces through a Registry.
package store
