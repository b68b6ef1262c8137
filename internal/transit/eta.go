package transit

// MinutesAway projects an absolute arrival timestamp into whole minutes
// from now. Nil in means nil out ("no data", not zero). Past or
// imminent arrivals clamp to 0; positive differences round half-up, so
// 30s away reports 1 and 90s away reports 2.
func MinutesAway(timestampMillis *int64, nowMillis int64) *int {
	if timestampMillis == nil {
		return nil
	}

	diff := *timestampMillis - nowMillis
	if diff <= 0 {
		zero := 0
		return &zero
	}

	minutes := int((diff + 30_000) / 60_000)
	return &minutes
}
