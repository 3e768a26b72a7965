// Package html renders a form's live state as server-side HTML using pongo2
// templates. Input values and messages are reduced to plain text with
// bluemonday before they reach the template, which escapes them again on
// output.
package html
