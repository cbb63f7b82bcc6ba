package models

import "fmt"

// Weekday is the closed set of training days, stored as Spanish day
// names.
type Weekday string

const (
	Monday    Weekday = "Lunes"
	Tuesday   Weekday = "Martes"
	Wednesday Weekday = "Miércoles"
	Thursday  Weekday = "Jueves"
	Friday    Weekday = "Viernes"
	Saturday  Weekday = "Sábado"
	Sunday    Weekday = "Domingo"
)

// Weekdays returns the seven valid values in calendar order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether w is one of the seven known labels.
func (w Weekday) Valid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

func (w Weekday) String() string {
	return string(w)
}

// ParseWeekday converts a raw label into a Weekday, rejecting anything
// outside the closed set.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(s)
	if !w.Valid() {
		return "", fmt.Errorf("invalid weekday %q", s)
	}
	return w, nil
}
