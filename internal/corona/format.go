package corona

import "fmt"

func arrow(delta int) string {
	if delta >= 0 {
		return "↑"
	}
	return "↓"
}

// Summary renders the status line. Negative deltas keep their sign: ↓-12.
func Summary(loc Locale, confirmed, confirmedDelta, deaths, deathsDelta int) string {
	return fmt.Sprintf("%s (%s%s)  ✝ %s (%s%s)",
		loc.Int(confirmed), arrow(confirmedDelta), loc.Int(confirmedDelta),
		loc.Int(deaths), arrow(deathsDelta), loc.Int(deathsDelta))
}
