// Package submit turns validated form values into an outbound effect and maps
// the result into an Outcome the controller can render.
//
// Two pipelines ship with the package: Remote posts multipart credentials to
// an endpoint and persists the session payload, Callback forwards values to a
// caller supplied handler. Both report failures as Outcomes instead of
// swallowing them.
package submit
