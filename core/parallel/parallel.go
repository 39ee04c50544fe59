// Package parallel は行範囲の分割実行と、独立したタスクのワーカープールを提供する。
package parallel

import (
	"runtime"
	"sync"
)

// Ranges は [0, n) を最大 workers 個の連続した区間に分け、各区間で fn を並行に呼ぶ。
// すべての fn が戻るまで待つ。
func Ranges(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers = max(1, min(workers, n))
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(lo, hi)
		}()
	}
	wg.Wait()
}

// Rows は n が threshold 以下なら fn(0, n) を1回呼び、超えれば CPU 数で分割する
func Rows(n, threshold int, fn func(lo, hi int)) {
	if n <= threshold {
		if n > 0 {
			fn(0, n)
		}
		return
	}
	Ranges(n, runtime.NumCPU(), fn)
}

// ForEach calls fn(i) for every i in [0, n) on at most workers goroutines,
// which pull indices in order so slow tasks do not hold up a whole chunk.
// workers <= 0 means runtime.NumCPU(). With one worker the calls happen on the
// calling goroutine and stop at the first error; otherwise every task runs and
// the error of the lowest failing index is returned.
func ForEach(n, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	next := make(chan int)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for w := 0; w < min(workers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				errs[i] = fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
