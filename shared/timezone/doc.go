// Package timezone pins every wall-clock decision to one configured zone.
//
// The desk thinks in calendar days: a member's presence, the day's log and
// the overstay/absent windows are all computed from the application's local
// midnight, never the server's. APP_TIMEZONE takes an IANA name such as
// "Asia/Kolkata" or "UTC" and is loaded when the package is imported; an
// unknown name falls back to UTC with an error logged.
//
//	now := timezone.Now()
//	start, next := timezone.DayBounds(now)      // [start, next) for "today"
//	offset := timezone.SinceMidnight(now)       // position within the day
//	open, _ := timezone.ParseClock("09:00")     // "HH:MM" to an offset
//	day, _ := timezone.Parse("2006-01-02", "2025-03-04")
//
// DayBounds is half-open, so an event at exactly next belongs to the
// following day. Across a DST change a day may be 23 or 25 hours long.
package timezone
