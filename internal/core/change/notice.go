package change

import "fmt"

// Notice is the presentation half of an alert: severity tier, title,
// rendered message, and the follow-up flag
type Notice struct {
	Severity       Severity
	Title          string
	Message        string
	RequiresAction bool
}

// titles maps each tier 1:1, total
var titles = map[Severity]string{
	SeverityCritical: "🚨🚨 CRITICAL: Major Mining Activity Detected",
	SeverityHigh:     "🚨 High Priority: Significant Mining Expansion",
	SeverityMedium:   "⚠️ New Mining Activity Detected",
	SeverityLow:      "ℹ️ Minor Change Detected",
}

// Title returns the tier title
func Title(s Severity) string { return titles[s] }

// BuildNotice renders the alert text for a comparison.
// Direction word follows the sign of ChangeHa; hectares print with 2
// decimals, percent with 1; previous date is appended when history exists
func BuildNotice(cmp ComparisonResult, currentAreaHa float64) Notice {
	sev := ClassifySeverity(cmp.ChangeHa)

	var msg string
	if cmp.ChangeHa > 0 {
		msg = fmt.Sprintf("Mining area INCREASED by %.2f hectares (+%.1f%%). ",
			cmp.ChangeHa, cmp.ChangePercent)
	} else {
		msg = fmt.Sprintf("Mining area DECREASED by %.2f hectares (%.1f%%). ",
			-cmp.ChangeHa, cmp.ChangePercent)
	}

	msg += fmt.Sprintf("Current total: %.2f ha. ", currentAreaHa)

	if !cmp.IsFirstRun && cmp.PreviousDate != nil {
		msg += fmt.Sprintf("Previous measurement from %s. ",
			cmp.PreviousDate.Format("2006-01-02"))
	}

	msg += "Field inspection recommended."

	return Notice{
		Severity:       sev,
		Title:          titles[sev],
		Message:        msg,
		RequiresAction: sev.RequiresAction(),
	}
}
