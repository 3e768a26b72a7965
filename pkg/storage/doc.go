// Package storage implements the persisted key/value storage written after a
// successful sign-in. The keys are shared with every other part of an
// application that reads login state, so KeyUserData and KeyIsLoggedIn are a
// compatibility contract.
package storage
