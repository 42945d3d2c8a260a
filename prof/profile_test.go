package prof

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			label := "even"
			if i%2 == 1 {
				label = "odd"
			}
			r.Track(time.Now().Add(-time.Millisecond), label)
		}(i)
	}
	wg.Wait()

	require.Len(t, r.Snapshot(), 8)
	totals := r.Totals()
	require.Len(t, totals, 2)
	require.Equal(t, "even", totals[0].Label)
	require.Equal(t, 4, totals[0].Count)
	require.GreaterOrEqual(t, totals[1].Sum, 4*time.Millisecond)

	require.Len(t, r.SnapshotAndReset(), 8)
	require.Empty(t, r.Snapshot())
}
