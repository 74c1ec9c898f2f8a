package utils

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const DateLayout = "2006-01-02"

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	Now() time.Time
}

type utils struct {
	clock func() time.Time
}

func New() IUtils {
	return &utils{
		clock: time.Now,
	}
}

// NewWithClock returns utils whose Now is driven by clock. Used by tests that need fixed timestamps.
func NewWithClock(clock func() time.Time) IUtils {
	return &utils{
		clock: clock,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) Now() time.Time {
	return u.clock()
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the whole days from `from` to `to`, ignoring the time of day.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - f.Unix()) / 86400)
}
