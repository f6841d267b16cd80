package supportlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.csv")
	sink := NewCSVSink(path)

	require.NoError(t, sink.Append("C100", "battery issue"))

	records := readRecords(t, path)
	require.Len(t, records, 1)

	// (record id, timestamp, customer id, inquiry)
	require.Len(t, records[0], 4)
	assert.NotEmpty(t, records[0][0])
	assert.NotEmpty(t, records[0][1])
	assert.Equal(t, "C100", records[0][2])
	assert.Equal(t, "battery issue", records[0][3])
}

func TestCSVSinkAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.csv")

	// 別々のシンクインスタンスでも追記になる
	require.NoError(t, NewCSVSink(path).Append("C100", "first"))
	require.NoError(t, NewCSVSink(path).Append("C101", "second"))

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0][3])
	assert.Equal(t, "second", records[1][3])
}

func TestCSVSinkQuotesInquiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.csv")
	sink := NewCSVSink(path)

	// カンマや改行を含む問い合わせも1レコードとして読み戻せる
	require.NoError(t, sink.Append("C100", "screen cracked, twice\nsecond line"))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "screen cracked, twice\nsecond line", records[0][3])
}

func TestCSVSinkConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.csv")
	sink := NewCSVSink(path)

	// 並行追記でも部分的なレコードが見えないこと
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Append("C200", "concurrent inquiry"))
		}()
	}
	wg.Wait()

	records := readRecords(t, path)
	require.Len(t, records, 20)
	for _, record := range records {
		require.Len(t, record, 4)
		assert.Equal(t, "C200", record[2])
	}
}
