// Package errors provides structured errors for the vela runtime and CLI.
//
// Every error carries a code from the registry (E101, E040, ...), a category,
// a short message and an optional longer detail. Errors wrap their cause so
// errors.Is and errors.As keep working across package boundaries.
//
//	err := errors.New("E101").Wrap(cause)
//	fmt.Fprint(os.Stderr, err.Format())
package errors
