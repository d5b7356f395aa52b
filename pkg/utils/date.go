package utils

import (
	"log"
	"time"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	MonthKeyLayout  = "2006-01"
)

func GetJSTLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

// TimeNowJST returns the current time on the exchange-local clock.
func TimeNowJST() time.Time {
	return time.Now().In(GetJSTLocation())
}

// FormatTimestamp renders a time in the persisted record layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// MonthKeyFromTimestamp derives the YYYY-MM ranking bucket key from a
// persisted timestamp string. Malformed timestamps fall back to the
// current month rather than failing the update.
func MonthKeyFromTimestamp(timestamp string) string {
	t, err := time.ParseInLocation(TimestampLayout, timestamp, GetJSTLocation())
	if err != nil {
		return TimeNowJST().Format(MonthKeyLayout)
	}
	return t.Format(MonthKeyLayout)
}

// CurrentMonthKey returns the ranking bucket key for the current month.
func CurrentMonthKey() string {
	return TimeNowJST().Format(MonthKeyLayout)
}
