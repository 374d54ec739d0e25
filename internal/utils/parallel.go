package utils

import (
	"sync"
)

// Task is a unit of work executed concurrently with others.
type Task func() (interface{}, error)

// RunParallel executes all tasks concurrently and returns their results and
// errors in task order.
func RunParallel(tasks []Task) ([]interface{}, []error) {
	var wg sync.WaitGroup
	results := make([]interface{}, len(tasks))
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task) {
			defer wg.Done()
			result, err := t()
			results[index] = result
			errs[index] = err
		}(i, task)
	}

	wg.Wait()
	return results, errs
}
