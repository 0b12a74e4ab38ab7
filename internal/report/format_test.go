package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.34, "$12.34"},
		{-12.34, "-$12.34"},
		{0, "$0.00"},
		{1234.5, "$1234.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in))
	}
}

func TestPct(t *testing.T) {
	assert.Equal(t, Placeholder, Pct(analytics.NullFloat{}))
	assert.Equal(t, "-1.50%", Pct(analytics.Some(-1.5)))
	assert.Equal(t, "10.00%", Pct(analytics.Some(10)))
}

func TestWinRateAndProfitFactor(t *testing.T) {
	assert.Equal(t, "50%", WinRate(50))
	assert.Equal(t, "67%", WinRate(66.666))
	assert.Equal(t, "∞", ProfitFactor(analytics.Stats{ProfitFactor: math.Inf(1)}))
	assert.Equal(t, "2.00", ProfitFactor(analytics.Stats{ProfitFactor: 2}))
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, "05.03.24, 14:07", DateTime("2024-03-05T14:07:00Z", time.UTC))
	assert.Equal(t, "05.03.24, 14:07", DateTime("2024-03-05T14:07", time.UTC))
	assert.Equal(t, "", DateTime("", time.UTC))
	assert.Equal(t, "", DateTime("yesterday", time.UTC))
}

func TestTimeRange(t *testing.T) {
	tr := models.Trade{EntryTime: "2024-03-05T14:07", ExitTime: "2024-03-05T15:00"}
	assert.Equal(t, "05.03.24, 14:07 → 05.03.24, 15:00", TimeRange(tr, time.UTC))

	tr.ExitTime = ""
	assert.Equal(t, "05.03.24, 14:07", TimeRange(tr, time.UTC))
}

func TestEntryExit(t *testing.T) {
	assert.Equal(t, "100 → —", EntryExit(models.Trade{Entry: "100"}))
	assert.Equal(t, "100 → 110.5", EntryExit(models.Trade{Entry: "1e2", Exit: " 110.5 "}))
}

func TestNotes(t *testing.T) {
	short := strings.Repeat("a", 60)
	assert.Equal(t, short, Notes(short))

	long := strings.Repeat("я", 61)
	got := Notes(long)
	assert.Equal(t, strings.Repeat("я", 60)+"…", got)
}

func TestFixed_RoundsBinaryValue(t *testing.T) {
	assert.Equal(t, "$1.00", Money(1.005))
	assert.Equal(t, "2.67%", Pct(analytics.Some(2.675)))
	assert.Equal(t, "$0.13", Money(0.125))
}
