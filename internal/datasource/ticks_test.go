package datasource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTicksCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ticks.csv")
	content := "time,symbol,price,volume\n" +
		"2024-01-01 00:00:05,BTC,100.5,3\n" +
		"2024-01-01 00:00:50,BTC,101,1\n" +
		"2024-01-01 00:01:10,BTC,99.25,4\n" +
		"2024-01-01 00:02:00,ETH,20,7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDuckDBTickSource_ReadTicks(t *testing.T) {
	source, err := datasource.NewDuckDBTickSource(writeTicksCSV(t), nil)
	require.NoError(t, err)
	defer source.Close()

	var ticks []types.Tick
	for tick, err := range source.ReadTicks(context.Background(), optional.None[time.Time](), optional.None[time.Time]()) {
		require.NoError(t, err)
		ticks = append(ticks, tick)
	}

	require.Len(t, ticks, 4)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, types.Tick{Timestamp: base + 5, Symbol: "BTC", Price: 100.5, Volume: 3}, ticks[0])
	assert.Equal(t, types.Tick{Timestamp: base + 120, Symbol: "ETH", Price: 20, Volume: 7}, ticks[3])
}

func TestDuckDBTickSource_Bounds(t *testing.T) {
	source, err := datasource.NewDuckDBTickSource(writeTicksCSV(t), nil)
	require.NoError(t, err)
	defer source.Close()

	start := optional.Some(time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC))
	end := optional.Some(time.Date(2024, 1, 1, 0, 1, 30, 0, time.UTC))

	count, err := source.Count(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	total, err := source.Count(context.Background(), optional.None[time.Time](), optional.None[time.Time]())
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestDuckDBTickSource_StopsEarly(t *testing.T) {
	source, err := datasource.NewDuckDBTickSource(writeTicksCSV(t), nil)
	require.NoError(t, err)
	defer source.Close()

	seen := 0
	for _, err := range source.ReadTicks(context.Background(), optional.None[time.Time](), optional.None[time.Time]()) {
		require.NoError(t, err)
		seen++

		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
}
