// Package forms wires the two shipped surfaces: the credential sign-in form
// (local state, remote submission) and the low NSD filter panel (shared
// state, callback submission).
package forms
