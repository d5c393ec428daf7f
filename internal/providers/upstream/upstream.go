// Package upstream carries the error type shared by the external service
// adapters.
package upstream

import "fmt"

// Error reports a failed call to an external provider. The handler layer
// maps it to a gateway error with the provider message in details.
type Error struct {
	Provider string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
