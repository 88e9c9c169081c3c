package table

import "errors"

var (
	ErrInvalidZone     = errors.New("invalid zone")
	ErrInvalidCapacity = errors.New("invalid capacity")
)

type Zone string

const (
	ZoneWindow  Zone = "window"
	ZoneCenter  Zone = "center"
	ZoneGarden  Zone = "garden"
	ZonePrivate Zone = "private"
)

func (z Zone) String() string {
	return string(z)
}

func (z Zone) IsValid() bool {
	switch z {
	case ZoneWindow, ZoneCenter, ZoneGarden, ZonePrivate:
		return true
	default:
		return false
	}
}

type Table struct {
	id       int
	capacity int
	zone     Zone
}

func NewTable(id, capacity int, zone Zone) (Table, error) {
	if id <= 0 {
		return Table{}, errors.New("table id must be positive")
	}
	if capacity <= 0 {
		return Table{}, ErrInvalidCapacity
	}
	if !zone.IsValid() {
		return Table{}, ErrInvalidZone
	}
	return Table{id: id, capacity: capacity, zone: zone}, nil
}

func (t Table) ID() int       { return t.id }
func (t Table) Capacity() int { return t.capacity }
func (t Table) Zone() Zone    { return t.zone }
