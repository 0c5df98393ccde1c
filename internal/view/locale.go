package view

import "time"

// Locale identifies a supported display locale.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHebrew  Locale = "he"
)

// Direction is a text direction for layout purposes.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// navMultiplier maps each locale to the multiplier applied to navigation
// arrows. Under Hebrew the calendar reads right-to-left, so the visually
// "forward" control must advance the displayed range in reading order,
// which inverts the arithmetic direction. Kept as an explicit table rather
// than a sign flip buried in the arithmetic.
var navMultiplier = map[Locale]int{
	LocaleEnglish: +1,
	LocaleHebrew:  -1,
}

// NavMultiplier returns the navigation direction multiplier for the locale.
// Unknown locales read left-to-right.
func (l Locale) NavMultiplier() int {
	if m, ok := navMultiplier[l]; ok {
		return m
	}
	return +1
}

// Direction returns the text direction for the locale.
func (l Locale) Direction() Direction {
	if l == LocaleHebrew {
		return DirectionRTL
	}
	return DirectionLTR
}

// The original tool ships its own translation tables; day and month names
// stay in-process here for the same reason.
var dayNames = map[Locale][7]string{
	LocaleEnglish: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	LocaleHebrew:  {"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"},
}

var monthNames = map[Locale][12]string{
	LocaleEnglish: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	LocaleHebrew: {
		"ינואר", "פברואר", "מרץ", "אפריל", "מאי", "יוני",
		"יולי", "אוגוסט", "ספטמבר", "אוקטובר", "נובמבר", "דצמבר",
	},
}

// DayName returns the localized name for a weekday.
func (l Locale) DayName(d time.Weekday) string {
	names, ok := dayNames[l]
	if !ok {
		names = dayNames[LocaleEnglish]
	}
	return names[int(d)]
}

// MonthName returns the localized name for a month.
func (l Locale) MonthName(m time.Month) string {
	names, ok := monthNames[l]
	if !ok {
		names = monthNames[LocaleEnglish]
	}
	return names[int(m)-1]
}
