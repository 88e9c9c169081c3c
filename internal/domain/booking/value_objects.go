package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid booking date")
	ErrInvalidTime  = errors.New("invalid booking time")
	ErrInvalidPhone = errors.New("invalid phone number")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Slot identifies one table at one date and time. The time component is
// always stored in normalized 24h "HH:MM" form, so two requests for
// "7:00 PM" and "19:00" collide on the same key.
type Slot struct {
	tableID   int
	date      string
	timeOfDay string
}

func NewSlot(tableID int, date, timeOfDay string) (Slot, error) {
	if tableID <= 0 {
		return Slot{}, errors.New("table id must be positive")
	}
	normalizedDate, err := NormalizeDate(date)
	if err != nil {
		return Slot{}, err
	}
	normalizedTime, err := NormalizeTime(timeOfDay)
	if err != nil {
		return Slot{}, err
	}
	return Slot{tableID: tableID, date: normalizedDate, timeOfDay: normalizedTime}, nil
}

func (s Slot) TableID() int { return s.tableID }
func (s Slot) Date() string { return s.date }
func (s Slot) Time() string { return s.timeOfDay }
func (s Slot) IsZero() bool { return s == Slot{} }

// Key is the canonical slot identity: "<tableID>|<date>|<HH:MM>".
func (s Slot) Key() string {
	return fmt.Sprintf("%d|%s|%s", s.tableID, s.date, s.timeOfDay)
}

// NormalizeDate requires the "YYYY-MM-DD" form and returns it trimmed.
func NormalizeDate(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if _, err := time.Parse(dateLayout, v); err != nil {
		return "", ErrInvalidDate
	}
	return v, nil
}

// NormalizeTime accepts 24h ("19:00", "9:30") and 12h ("7:00 PM", "7:00pm")
// forms and returns zero-padded 24h "HH:MM".
func NormalizeTime(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", ErrInvalidTime
	}

	layouts := []string{timeLayout, "3:04 PM", "3:04PM", "3:04 pm", "3:04pm"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", ErrInvalidTime
}

// Phone is the notification routing key: every status event for a booking is
// delivered to subscribers of the booking's phone.
type Phone struct {
	value string
}

func NewPhone(raw string) (Phone, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Phone{}, ErrInvalidPhone
	}

	var b strings.Builder
	for i, r := range v {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// formatting characters are dropped so "+1 (555) 123-4567" and
			// "+15551234567" route to the same subscribers
		default:
			return Phone{}, ErrInvalidPhone
		}
	}
	if b.Len() == 0 || (b.Len() == 1 && b.String() == "+") {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: b.String()}, nil
}

func (p Phone) String() string { return p.value }
func (p Phone) IsZero() bool   { return p.value == "" }
