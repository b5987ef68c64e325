// Package allowance computes the derived pay fields of a floating trip:
// distance, mileage allowance, elapsed time, time bonus and total amount.
// Every function is pure and total; malformed input degrades to zero.
package allowance

// Policy holds the business constants of the driver compensation scheme.
type Policy struct {
	MileageRatePerKm       float64 `json:"mileage_rate_per_km"`
	BonusRatePerHour       float64 `json:"bonus_rate_per_hour"`
	BonusCapAmount         float64 `json:"bonus_cap_amount"`
	BonusCapThresholdHours float64 `json:"bonus_cap_threshold_hours"`

	// Leftover minutes up to RoundDownMaxMinutes are dropped and those up to
	// HalfHourMaxMinutes count as half an hour. Larger remainders round up.
	RoundDownMaxMinutes int `json:"round_down_max_minutes"`
	HalfHourMaxMinutes  int `json:"half_hour_max_minutes"`
}

// DefaultPolicy returns the canonical rate set.
func DefaultPolicy() Policy {
	return Policy{
		MileageRatePerKm:       3.5,
		BonusRatePerHour:       50,
		BonusCapAmount:         300,
		BonusCapThresholdHours: 6,
		RoundDownMaxMinutes:    15,
		HalfHourMaxMinutes:     45,
	}
}

// withDefaults fills zero-valued fields so a partially configured policy
// still produces sane results.
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MileageRatePerKm <= 0 {
		p.MileageRatePerKm = d.MileageRatePerKm
	}
	if p.BonusRatePerHour <= 0 {
		p.BonusRatePerHour = d.BonusRatePerHour
	}
	if p.BonusCapAmount <= 0 {
		p.BonusCapAmount = d.BonusCapAmount
	}
	if p.BonusCapThresholdHours <= 0 {
		p.BonusCapThresholdHours = d.BonusCapThresholdHours
	}
	if p.RoundDownMaxMinutes <= 0 {
		p.RoundDownMaxMinutes = d.RoundDownMaxMinutes
	}
	if p.HalfHourMaxMinutes <= p.RoundDownMaxMinutes {
		p.HalfHourMaxMinutes = d.HalfHourMaxMinutes
	}
	return p
}
