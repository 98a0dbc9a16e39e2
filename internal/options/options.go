// Package options implements the generic functional-option plumbing behind
// the codec backends' configuration surfaces.
package options

// Option configures a value of type T and may reject an invalid setting.
type Option[T any] func(T) error

// Apply applies opts to target in order, stopping at the first option that
// fails.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
