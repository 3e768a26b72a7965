// Package validation holds the pure field validators used by formflow
// controllers. A validator maps a raw input string to a Result; it never
// touches form state and never has side effects, so the same function backs
// both the per-keystroke gate and the stricter submit-time gate.
package validation
