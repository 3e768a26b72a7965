// Package testsupport holds golden-file helpers and recording collaborators
// shared by the formflow test suites.
package testsupport
