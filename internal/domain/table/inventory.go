package table

import (
	"errors"
	"sort"
)

var (
	ErrNotFound       = errors.New("table not found")
	ErrDuplicateTable = errors.New("duplicate table id")
)

// Inventory is the fixed table layout of the venue. It is loaded once at
// startup and never mutated, so lookups need no locking.
type Inventory struct {
	byID    map[int]Table
	ordered []Table
}

func NewInventory(tables []Table) (*Inventory, error) {
	byID := make(map[int]Table, len(tables))
	ordered := make([]Table, 0, len(tables))
	for _, t := range tables {
		if _, exists := byID[t.ID()]; exists {
			return nil, ErrDuplicateTable
		}
		byID[t.ID()] = t
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID() < ordered[j].ID() })
	return &Inventory{byID: byID, ordered: ordered}, nil
}

func (inv *Inventory) Exists(id int) bool {
	_, ok := inv.byID[id]
	return ok
}

func (inv *Inventory) CapacityOf(id int) (int, error) {
	t, ok := inv.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	return t.Capacity(), nil
}

func (inv *Inventory) Get(id int) (Table, error) {
	t, ok := inv.byID[id]
	if !ok {
		return Table{}, ErrNotFound
	}
	return t, nil
}

// List returns the tables sorted by id. Callers get a copy.
func (inv *Inventory) List() []Table {
	out := make([]Table, len(inv.ordered))
	copy(out, inv.ordered)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.ordered)
}

// DefaultLayout is the venue floor plan: four zones of four tables each.
func DefaultLayout() *Inventory {
	specs := []struct {
		id       int
		capacity int
		zone     Zone
	}{
		{1, 2, ZoneWindow}, {2, 4, ZoneWindow}, {3, 2, ZoneWindow}, {4, 6, ZoneWindow},
		{5, 4, ZoneCenter}, {6, 2, ZoneCenter}, {7, 4, ZoneCenter}, {8, 8, ZoneCenter},
		{9, 2, ZoneGarden}, {10, 4, ZoneGarden}, {11, 2, ZoneGarden}, {12, 6, ZoneGarden},
		{13, 4, ZonePrivate}, {14, 6, ZonePrivate}, {15, 4, ZonePrivate}, {16, 8, ZonePrivate},
	}

	tables := make([]Table, 0, len(specs))
	for _, s := range specs {
		t, err := NewTable(s.id, s.capacity, s.zone)
		if err != nil {
			panic(err) // static layout, unreachable
		}
		tables = append(tables, t)
	}

	inv, err := NewInventory(tables)
	if err != nil {
		panic(err)
	}
	return inv
}
