// Package ids generates identifiers for stored entities.
package ids

import "github.com/oklog/ulid/v2"

// New returns a lexicographically sortable identifier suitable for primary keys.
func New() string {
	return ulid.Make().String()
}
