// Package tui drives a form controller from a terminal. A Session walks the
// schema in order, prompting through a PromptDriver (survey by default),
// feeding every answer to the controller and re-prompting while the
// controller rejects it. Once all fields are filled the user can submit,
// reset or cancel; failed submissions are reported and the menu is shown
// again with the entered values intact.
package tui
