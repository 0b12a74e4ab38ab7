package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type stubFetcher struct {
	data []byte
	err  error
}

func (f stubFetcher) FetchDocument(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	svc := journal.NewService(zap.NewNop(), database.NewBlobStore(db),
		config.Journal{StorageKey: "test", Timezone: "UTC", ExportVersion: 3},
		journal.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		journal.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	svc.Load(context.Background())

	var out bytes.Buffer
	return &app{
		journal: svc,
		console: report.NewConsoleWriter(&out, time.UTC),
		fetcher: stubFetcher{},
		stdin:   strings.NewReader(""),
		stdout:  &out,
	}, &out
}

func run(t *testing.T, a *app, args ...string) error {
	t.Helper()
	return a.run(context.Background(), args)
}

func TestRun_Usage(t *testing.T) {
	a, out := newTestApp(t)
	assert.ErrorIs(t, run(t, a), errUsage)
	assert.Contains(t, out.String(), "commands:")

	assert.ErrorIs(t, run(t, a, "bogus"), errUsage)
	assert.NoError(t, run(t, a, "help"))
}

func TestRun_AddListStats(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, run(t, a, "add", "-symbol", "btcusdt", "-entry", "100", "-exit", "110", "-size", "1", "-strategy", "breakout"))
	assert.Contains(t, out.String(), "Added id-1 BTCUSDT LONG")

	require.NoError(t, run(t, a, "add", "-symbol", "eth", "-side", "short", "-entry", "200", "-exit", "190", "-size", "2"))
	require.Len(t, a.journal.Trades(), 2)

	out.Reset()
	require.NoError(t, run(t, a, "list", "-side", "short"))
	assert.Contains(t, out.String(), "ETH")
	assert.NotContains(t, out.String(), "BTCUSDT")

	out.Reset()
	require.NoError(t, run(t, a, "stats"))
	assert.Contains(t, out.String(), "$30.00")
	assert.Contains(t, out.String(), "100%")

	err := run(t, a, "add", "-entry", "1")
	assert.ErrorIs(t, err, journal.ErrInvalidTrade)
}

func TestRun_DupRmClear(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, run(t, a, "add", "-symbol", "SOL", "-entry", "10", "-exit", "12", "-size", "1"))

	require.NoError(t, run(t, a, "dup", "id-1"))
	assert.Contains(t, out.String(), "Duplicated id-1 as id-2")

	assert.ErrorIs(t, run(t, a, "rm", "nope"), journal.ErrTradeNotFound)
	assert.ErrorIs(t, run(t, a, "rm"), errUsage)
	require.NoError(t, run(t, a, "rm", "id-1"))
	assert.Len(t, a.journal.Trades(), 1)

	assert.ErrorIs(t, run(t, a, "clear"), errUsage)
	assert.Len(t, a.journal.Trades(), 1)
	require.NoError(t, run(t, a, "clear", "-yes"))
	assert.Empty(t, a.journal.Trades())
}

func TestRun_ExportImport(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, run(t, a, "add", "-symbol", "SOL", "-entry", "10", "-exit", "12", "-size", "1"))

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, run(t, a, "export", "-o", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 3`)

	require.NoError(t, run(t, a, "clear", "-yes"))
	out.Reset()
	require.NoError(t, run(t, a, "import", path))
	assert.Contains(t, out.String(), "Imported 1 trades")
	assert.Equal(t, "id-1", a.journal.Trades()[0].ID)

	a.stdin = strings.NewReader(`{"trades":[{"id":"s1"},{"id":"s2"}]}`)
	require.NoError(t, run(t, a, "import", "-"))
	assert.Len(t, a.journal.Trades(), 2)

	a.stdin = strings.NewReader(`{"trades":"nope"}`)
	assert.ErrorIs(t, run(t, a, "import"), journal.ErrInvalidDocument)
	assert.Len(t, a.journal.Trades(), 2)
}

func TestRun_ImportURL(t *testing.T) {
	a, _ := newTestApp(t)
	a.fetcher = stubFetcher{data: []byte(`{"version":3,"trades":[{"id":"r1","symbol":"ADA"}]}`)}
	require.NoError(t, run(t, a, "import", "-url", "https://backup.example.com/j.json"))
	assert.Equal(t, "r1", a.journal.Trades()[0].ID)

	a.fetcher = stubFetcher{err: errors.New("boom")}
	assert.Error(t, run(t, a, "import", "-url", "https://backup.example.com/j.json"))
	assert.Len(t, a.journal.Trades(), 1)
}

func TestRun_Charts(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, run(t, a, "add", "-symbol", "SOL", "-entry", "10", "-exit", "12", "-size", "1", "-exit-time", "2024-03-04T10:00"))

	require.NoError(t, run(t, a, "equity", "-mode", "pertrade"))
	assert.Contains(t, out.String(), "P&L per trade ($)")
	assert.Contains(t, out.String(), "1 SOL")

	out.Reset()
	require.NoError(t, run(t, a, "period", "-mode", "week", "-metric", "pct"))
	assert.Contains(t, out.String(), "Weekly Result (%)")
	assert.Contains(t, out.String(), "2024-W10")
	assert.Contains(t, out.String(), "20.00")

	assert.Error(t, run(t, a, "period", "-mode", "year"))
	assert.Error(t, run(t, a, "equity", "-mode", "log"))

	out.Reset()
	require.NoError(t, run(t, a, "sides"))
	assert.Contains(t, out.String(), "LONG")
}

func TestRun_XLSX(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, run(t, a, "add", "-symbol", "SOL", "-entry", "10", "-exit", "12", "-size", "1"))

	path := filepath.Join(t.TempDir(), "journal.xlsx")
	require.NoError(t, run(t, a, "xlsx", "-o", path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.TradesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
