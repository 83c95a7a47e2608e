package timezone

import (
	"seatdesk/config"
	"seatdesk/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation *time.Location

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown APP_TIMEZONE, calendar days will follow UTC")

		loc = time.UTC
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("calendar days follow the application timezone")
}

// GetLocation is the zone that decides where a library day starts and ends.
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads wall-clock values such as query dates as application time.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay returns midnight of t's calendar day in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)
	year, month, day := local.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, local.Location())
}

// DayBounds returns the half-open interval [start, next) covering t's calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)

	return start, start.AddDate(0, 0, 1)
}

// SinceMidnight returns how far t is into its calendar day in the application timezone.
func SinceMidnight(t time.Time) time.Duration {
	local := ToAppTime(t)

	return time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
}

// ParseClock parses an "HH:MM" wall-clock value into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	parsed, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return 0, err
	}

	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
