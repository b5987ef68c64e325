package allowance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		startKm  string
		endKm    string
		expected float64
	}{
		{name: "normal", startKm: "100.00", endKm: "150.50", expected: 50.50},
		{name: "end before start", startKm: "150", endKm: "100", expected: 0},
		{name: "equal readings", startKm: "120", endKm: "120", expected: 0},
		{name: "empty start", startKm: "", endKm: "50", expected: 50},
		{name: "both empty", startKm: "", endKm: "", expected: 0},
		{name: "garbage start", startKm: "abc", endKm: "10", expected: 10},
		{name: "whitespace", startKm: " 10 ", endKm: " 12.5", expected: 2.5},
		{name: "nan start", startKm: "NaN", endKm: "5", expected: 5},
		{name: "inf end", startKm: "1", endKm: "Inf", expected: 0},
		{name: "float noise", startKm: "100", endKm: "100.1", expected: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.startKm, tt.endKm))
		})
	}
}

func TestCalculator_Mileage(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	assert.Equal(t, 177.0, calc.Mileage(50.50)) // 176.75
	assert.Equal(t, 0.0, calc.Mileage(0))
	assert.Equal(t, 0.0, calc.Mileage(-3))
	assert.Equal(t, 4.0, calc.Mileage(1)) // 3.5 rounds half up

	tenRate := NewCalculator(Policy{MileageRatePerKm: 10})
	assert.Equal(t, 505.0, tenRate.Mileage(50.50))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		seconds int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:10", 9*3600 + 600, true},
		{"23:59", 23*3600 + 59*60, true},
		{"08:00:30", 8*3600 + 30, true},
		{"9:05", 9*3600 + 300, true},
		{"", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12", 0, false},
		{"12:3a", 0, false},
		{"+1:30", 0, false},
		{"12:30:00:00", 0, false},
		{"123:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.seconds, got)
		})
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		expected  string
	}{
		{name: "ten minutes", startTime: "09:00", endTime: "09:10", expected: "00:10:00"},
		{name: "crosses midnight", startTime: "22:00", endTime: "02:00", expected: "04:00:00"},
		{name: "same time", startTime: "10:00", endTime: "10:00", expected: "00:00:00"},
		{name: "missing start", startTime: "", endTime: "10:00", expected: "00:00:00"},
		{name: "missing end", startTime: "10:00", endTime: "", expected: "00:00:00"},
		{name: "malformed", startTime: "xx:yy", endTime: "10:00", expected: "00:00:00"},
		{name: "with seconds", startTime: "08:00:30", endTime: "08:01:00", expected: "00:00:30"},
		{name: "one minute short of a day", startTime: "00:01", endTime: "00:00", expected: "23:59:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Elapsed(tt.startTime, tt.endTime))
		})
	}
}

func TestElapsedSeconds_MidnightWrap(t *testing.T) {
	for _, pair := range [][2]string{{"08:00", "17:30"}, {"23:15", "00:45"}, {"12:00", "11:59"}} {
		start, _ := ParseClock(pair[0])
		end, _ := ParseClock(pair[1])
		want := end - start
		if want < 0 {
			want += 86400
		}
		assert.Equal(t, want, ElapsedSeconds(pair[0], pair[1]), pair)
	}
}

func TestCalculator_TimeBonus(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	tests := []struct {
		name      string
		startTime string
		endTime   string
		expected  string
	}{
		{name: "ten minutes rounds down", startTime: "09:00", endTime: "09:10", expected: "0.00"},
		{name: "exactly 15 minutes rounds down", startTime: "09:00", endTime: "09:15", expected: "0.00"},
		{name: "16 minutes is half an hour", startTime: "09:00", endTime: "09:16", expected: "25.00"},
		{name: "45 minutes is half an hour", startTime: "09:00", endTime: "09:45", expected: "25.00"},
		{name: "46 minutes carries", startTime: "09:00", endTime: "09:46", expected: "50.00"},
		{name: "just under 15 minutes", startTime: "09:00:00", endTime: "09:14:59", expected: "0.00"},
		{name: "59m40s carries through rounding", startTime: "09:00:00", endTime: "09:59:40", expected: "50.00"},
		{name: "two and a quarter hours", startTime: "08:00", endTime: "10:15", expected: "100.00"},
		{name: "five and a half hours", startTime: "08:00", endTime: "13:45", expected: "275.00"},
		{name: "carry reaches the cap", startTime: "08:00", endTime: "13:46", expected: "300.00"},
		{name: "over six hours is capped", startTime: "08:00", endTime: "14:40", expected: "300.00"},
		{name: "long overnight is capped", startTime: "20:00", endTime: "08:00", expected: "300.00"},
		{name: "no times", startTime: "", endTime: "", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.TimeBonus(tt.startTime, tt.endTime))
		})
	}
}

func TestCalculator_BonusCap(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	for hours := 6; hours < 24; hours++ {
		assert.Equal(t, 300.0, calc.Bonus(hours*3600+20*60), hours)
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 227.0, Total(50, 177, 0))
	assert.Equal(t, 11.0, Total(10.4, 0, 0.2))
	assert.Equal(t, 350.0, Total(0, 0, 350))
	assert.Equal(t, 25.0, Total(math.NaN(), 0, 25))
	assert.Equal(t, 0.0, Total(math.Inf(1), 0, 0))
}

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	in := Input{
		StartKm:       "100.00",
		EndKm:         "150.50",
		StartTime:     "08:00",
		EndTime:       "14:40",
		FoodAllowance: "75.50",
	}

	res := calc.Calculate(in)
	assert.Equal(t, 50.50, res.TotalDistance)
	assert.Equal(t, 177.0, res.MileageAllowance)
	assert.Equal(t, 6*3600+40*60, res.ElapsedSeconds)
	assert.Equal(t, "06:40:00", res.TotalTime)
	assert.Equal(t, 6.5, res.RoundedHours)
	assert.Equal(t, "300.00", res.TimeBonus)
	assert.Equal(t, 75.50, res.FoodAllowance)
	assert.Equal(t, 553.0, res.TotalAmount) // 75.50 + 177 + 300
	assert.False(t, res.DistanceClamped)

	// recomputing gives identical results
	assert.Equal(t, res, calc.Calculate(in))
}

func TestCalculator_Calculate_EmptyForm(t *testing.T) {
	res := NewCalculator(DefaultPolicy()).Calculate(Input{})
	assert.Equal(t, Result{TotalTime: "00:00:00", TimeBonus: "0.00"}, res)
}

func TestCalculator_Calculate_ReversedOdometer(t *testing.T) {
	res := NewCalculator(DefaultPolicy()).Calculate(Input{StartKm: "200", EndKm: "150"})
	assert.Zero(t, res.TotalDistance)
	assert.Zero(t, res.MileageAllowance)
	assert.True(t, res.DistanceClamped)
}

func TestNewCalculator_FillsZeroPolicy(t *testing.T) {
	calc := NewCalculator(Policy{})
	require.Equal(t, DefaultPolicy(), calc.Policy())

	custom := NewCalculator(Policy{BonusRatePerHour: 40, BonusCapAmount: 200, BonusCapThresholdHours: 4})
	assert.Equal(t, "140.00", custom.TimeBonus("08:00", "11:30"))
	assert.Equal(t, "200.00", custom.TimeBonus("08:00", "12:00"))
}
