package competition

import "strings"

// Competition is one season of a tournament as reported by the source.
// It is created on first sighting and never mutated afterwards.
type Competition struct {
	ID       int64
	Name     string
	Season   string
	Category string
	Gender   string
}

// Key is the identity of a competition: (name, season).
type Key struct {
	Name   string
	Season string
}

func NewKey(name, season string) Key {
	return Key{Name: strings.TrimSpace(name), Season: strings.TrimSpace(season)}
}

func (c Competition) Key() Key {
	return NewKey(c.Name, c.Season)
}
