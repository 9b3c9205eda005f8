package directory

import (
	"strings"
	"sync"
)

// Entry pairs a campground id with its display name.
type Entry struct {
	ID   string
	Name string
}

// Directory is the fixed campground roster requests resolve against. Name
// matching is case-insensitive exact. Safe for concurrent use; a background
// refresh may update display names while requests resolve.
type Directory struct {
	mu      sync.RWMutex
	byLower map[string]string // lowercased display name -> id
	byID    map[string]string // id -> display name
	order   []string          // ids in configured order
}

// New builds a directory from entries, keeping their order for listing.
func New(entries []Entry) *Directory {
	d := &Directory{
		byLower: make(map[string]string, len(entries)),
		byID:    make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			continue
		}
		if _, seen := d.byID[e.ID]; !seen {
			d.order = append(d.order, e.ID)
		}
		d.byID[e.ID] = e.Name
		d.byLower[strings.ToLower(e.Name)] = e.ID
	}
	return d
}

// Default returns the Colorado front-range roster the service started with.
func Default() *Directory {
	return New([]Entry{
		{ID: "232369", Name: "Camp Dick"},
		{ID: "232462", Name: "Glacier Basin"},
		{ID: "232281", Name: "Olive Ridge"},
		{ID: "232368", Name: "Peaceful Valley"},
		{ID: "232280", Name: "Kelly Dahl"},
		{ID: "232282", Name: "Pawnee Campground"},
		{ID: "231862", Name: "Stillwater Campground"},
		{ID: "231861", Name: "Green Ridge Campground"},
		{ID: "232463", Name: "Moraine Park Campground"},
		{ID: "233187", Name: "Aspenglen Campground"},
		{ID: "260552", Name: "Timber Creek Campground"},
		{ID: "231860", Name: "Arapaho Bay Campground"},
	})
}

// IDFor resolves a display name to its campground id, ignoring case.
func (d *Directory) IDFor(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byLower[strings.ToLower(name)]
	return id, ok
}

// NameFor returns the display name for a campground id.
func (d *Directory) NameFor(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.byID[id]
	return name, ok
}

// Entries lists the roster in configured order.
func (d *Directory) Entries() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, Entry{ID: id, Name: d.byID[id]})
	}
	return out
}

// UpdateNames replaces display names for ids already in the roster and
// reports how many changed. Ids not in the roster are ignored; the roster
// itself never grows or shrinks here.
func (d *Directory) UpdateNames(names map[string]string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	updated := 0
	for id, name := range names {
		current, ok := d.byID[id]
		if !ok || name == "" || name == current {
			continue
		}
		delete(d.byLower, strings.ToLower(current))
		d.byID[id] = name
		d.byLower[strings.ToLower(name)] = id
		updated++
	}
	return updated
}
