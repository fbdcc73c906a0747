package reviewcache

import (
	"sync"
	"time"

	"github.com/HafizAhmed223/backend/internal/metadata"
)

// Janitor periodically sweeps dead entries out of a MemoryStore.
// Lazy expiry on Get already keeps dead entries from being served;
// the janitor only reclaims their memory, so a late or missed sweep
// is never a correctness problem.
type Janitor struct {
	store        *MemoryStore
	interval     time.Duration
	metadataSink metadata.MetadataSink

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewJanitor(store *MemoryStore, interval time.Duration, metadataSink metadata.MetadataSink) *Janitor {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &Janitor{
		store:        store,
		interval:     interval,
		metadataSink: metadataSink,
		done:         make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (j *Janitor) Start() {
	j.wg.Add(1)
	go j.sweepLoop()
}

// Stop terminates the sweep loop and waits for it to exit.
// It is safe to call Stop more than once.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
	})
	j.wg.Wait()
}

// sweepLoop removes dead entries on every tick until stopped.
func (j *Janitor) sweepLoop() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evicted, remaining := j.store.Sweep()
			j.metadataSink.RecordCacheSweep(evicted, remaining)
		case <-j.done:
			return
		}
	}
}
