package allowance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const secondsPerDay = 24 * 60 * 60

// Input is the raw form state of a floating trip. Any field may be empty.
type Input struct {
	StartKm       string `json:"start_km"`
	EndKm         string `json:"end_km"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	FoodAllowance string `json:"food_allowance"`
}

// Result holds every derived value for one Input.
type Result struct {
	TotalDistance    float64 `json:"total_distance"`
	MileageAllowance float64 `json:"mileage_allowance"`
	ElapsedSeconds   int     `json:"elapsed_seconds"`
	TotalTime        string  `json:"total_time"`
	RoundedHours     float64 `json:"rounded_hours"`
	TimeBonus        string  `json:"time_bonus"`
	TimeBonusAmount  float64 `json:"time_bonus_amount"`
	FoodAllowance    float64 `json:"food_allowance"`
	TotalAmount      float64 `json:"total_amount"`
	// DistanceClamped reports end_km < start_km, which yields zero distance.
	DistanceClamped bool `json:"distance_clamped"`
}

// Calculator applies a Policy to trip inputs. It carries no mutable state
// and is safe for concurrent use.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a calculator for the given policy.
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy.withDefaults()}
}

// Policy returns the effective policy.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// Calculate derives all allowance fields from the raw inputs.
func (c *Calculator) Calculate(in Input) Result {
	distance := Distance(in.StartKm, in.EndKm)
	elapsed := ElapsedSeconds(in.StartTime, in.EndTime)
	bonus := c.Bonus(elapsed)
	mileage := c.Mileage(distance)
	food := ParseAmount(in.FoodAllowance)

	return Result{
		TotalDistance:    distance,
		MileageAllowance: mileage,
		ElapsedSeconds:   elapsed,
		TotalTime:        FormatDuration(elapsed),
		RoundedHours:     c.RoundedHours(elapsed),
		TimeBonus:        FormatAmount(bonus),
		TimeBonusAmount:  bonus,
		FoodAllowance:    Round2(food),
		TotalAmount:      Total(food, mileage, bonus),
		DistanceClamped:  ParseAmount(in.EndKm) < ParseAmount(in.StartKm),
	}
}

// ParseAmount reads a decimal string. Empty, non-numeric and non-finite
// values are 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a currency value with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Distance returns end_km - start_km rounded to two decimals, or 0 when the
// end reading is not greater than the start reading.
func Distance(startKm, endKm string) float64 {
	start, end := ParseAmount(startKm), ParseAmount(endKm)
	if end <= start {
		return 0
	}
	return Round2(end - start)
}

// Mileage returns distance * rate rounded to the nearest whole unit.
func (c *Calculator) Mileage(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return math.Round(distance * c.policy.MileageRatePerKm)
}

// ParseClock converts "HH:MM" or "HH:MM:SS" to seconds since midnight.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	limits := []int{23, 59, 59}
	var fields [3]int
	for i, p := range parts {
		if p == "" || len(p) > 2 {
			return 0, false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, false
			}
		}
		n, _ := strconv.Atoi(p)
		if n > limits[i] {
			return 0, false
		}
		fields[i] = n
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], true
}

// ElapsedSeconds returns end - start in seconds, wrapping past midnight when
// end is earlier than start. Missing or malformed times give 0.
func ElapsedSeconds(startTime, endTime string) int {
	start, ok := ParseClock(startTime)
	if !ok {
		return 0
	}
	end, ok := ParseClock(endTime)
	if !ok {
		return 0
	}
	diff := end - start
	if diff < 0 {
		diff += secondsPerDay
	}
	return diff
}

// FormatDuration renders seconds as zero-padded HH:MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Elapsed returns the formatted duration between two clock times.
func Elapsed(startTime, endTime string) string {
	return FormatDuration(ElapsedSeconds(startTime, endTime))
}

// RoundedHours snaps an elapsed duration to whole or half hours.
func (c *Calculator) RoundedHours(seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	hours := seconds / 3600
	// whole minutes first so 14m59.9s and 15m land in the same bucket
	minutes := int(math.Round(float64(seconds%3600) / 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}

	switch {
	case minutes <= c.policy.RoundDownMaxMinutes:
		minutes = 0
	case minutes <= c.policy.HalfHourMaxMinutes:
		minutes = 30
	default:
		hours++
		minutes = 0
	}
	return float64(hours) + float64(minutes)/60
}

// Bonus returns the capped time bonus for an elapsed duration.
func (c *Calculator) Bonus(seconds int) float64 {
	rounded := c.RoundedHours(seconds)
	if rounded >= c.policy.BonusCapThresholdHours {
		return c.policy.BonusCapAmount
	}
	return Round2(rounded * c.policy.BonusRatePerHour)
}

// TimeBonus returns the formatted bonus for a pair of clock times.
func (c *Calculator) TimeBonus(startTime, endTime string) string {
	return FormatAmount(c.Bonus(ElapsedSeconds(startTime, endTime)))
}

// Total sums the pay components and rounds to the nearest whole unit.
// Non-finite terms count as 0.
func Total(food, mileage, bonus float64) float64 {
	sum := 0.0
	for _, v := range []float64{food, mileage, bonus} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
	}
	return math.Round(sum)
}
