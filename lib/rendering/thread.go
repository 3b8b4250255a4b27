package rendering

import (
	"fmt"

	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
	"golang.org/x/sys/unix"
)

// ThreadGuard remembers the OS thread it was created on. GL handles are
// only valid on the thread their context is current on, so the goroutine
// using them must have called runtime.LockOSThread.
type ThreadGuard struct {
	tid int
}

func NewThreadGuard() ThreadGuard {
	return ThreadGuard{tid: unix.Gettid()}
}

func (g ThreadGuard) Check() error {
	if tid := unix.Gettid(); tid != g.tid {
		return fmt.Errorf("%w: context owned by thread %d, called from %d", shaders.ErrWrongThread, g.tid, tid)
	}
	return nil
}
