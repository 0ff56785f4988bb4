// internal/testutil/mocks/ids.go
package mocks

import (
	"fmt"
	"sync/atomic"
)

// sequence genera ids deterministas: PREFIX1, PREFIX2, ...
func sequence(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}
