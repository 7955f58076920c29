// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"sync"
	"testing"
)

func TestSyncBufferConcurrentWrites(t *testing.T) {
	var buf SyncBuffer
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fmt.Fprintf(&buf, "line %d\n", n)
		}(i)
	}
	wg.Wait()

	if buf.Len() == 0 {
		t.Fatal("buffer is empty after writes")
	}
	if got, want := buf.Len(), len(buf.String()); got != want {
		t.Errorf("Len() = %d, String() has %d bytes", got, want)
	}
}
