// Package forms implements the validation and normalization pipeline behind
// the phonebook edit and search screens. Each form parses a typed submission
// into an immutable clean value or a set of field errors; writing the clean
// value onto a profile or repository is a separate step owned by the command
// layer and only happens once cleaning fully succeeded.
package forms
