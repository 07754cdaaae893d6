package fetch

import "sync"

// gather runs every task in its own goroutine and returns once all of
// them have settled. It is the join barrier between tree depths: tasks
// at one depth never observe partially-finished siblings because the
// caller only reads results after gather returns.
//
// Tasks write their outcome into slots they own exclusively (a field
// of the node being built, or a distinct slice index), so no locking
// is needed. A task must contain its own failure by recording an
// unavailable marker instead of panicking or aborting siblings.
func gather(tasks ...func()) {
	if len(tasks) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		go func(fn func()) {
			defer wg.Done()
			fn()
		}(task)
	}
	wg.Wait()
}
