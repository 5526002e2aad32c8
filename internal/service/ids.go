package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record ids carry their creation timestamp; the uuid fragment keeps
// ids unique when two creates land in the same millisecond.
func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
