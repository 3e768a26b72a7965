// Package controller binds a schema, its validators, a state store and a
// submission pipeline into one stateful form.
//
// Input flows through OnChange, which validates each keystroke and commits
// only accepted values. OnSubmit runs a stricter pass (field validators,
// required fields and submit policies) before handing a snapshot to the
// pipeline exactly once. A controller moves Editing -> Submitting -> Editing
// on failure or Submitted on success; a second OnSubmit while a submission
// is in flight is rejected without side effects.
package controller
