package balance

import "slices"

// Person is the roster entry the engine works with.
type Person struct {
	Name   string
	Car    string // car identifier, empty if the person has no car assigned
	Drinks bool
}

// Group is a named collection of person names sharing one balance.
type Group struct {
	Name    string
	Members []string
}

// Entities is the resolved list of billing entities.
//
// An entity is either a group or a person that belongs to no group. Order
// lists groups first (in creation order), then ungrouped persons (in roster
// order). Members maps every entity name to its constituent person names,
// a singleton list for ungrouped persons.
type Entities struct {
	Order   []string
	Members map[string][]string
}

// Resolve computes the billing entities for the given roster snapshot.
//
// It is a pure function of its inputs and must be re-run whenever the
// roster or the groups change.
func Resolve(persons []Person, groups []Group) Entities {
	e := Entities{
		Order:   make([]string, 0, len(groups)+len(persons)),
		Members: make(map[string][]string, len(groups)+len(persons)),
	}

	grouped := make(map[string]bool)
	for _, group := range groups {
		e.Order = append(e.Order, group.Name)
		e.Members[group.Name] = slices.Clone(group.Members)

		for _, member := range group.Members {
			grouped[member] = true
		}
	}

	for _, person := range persons {
		if grouped[person.Name] {
			continue
		}

		e.Order = append(e.Order, person.Name)
		e.Members[person.Name] = []string{person.Name}
	}

	return e
}

// knownMembers returns the members of the named entity that exist in the
// person set, preserving member order. A dangling entity reference returns
// an empty list so that callers attribute nothing instead of failing.
func (e Entities) knownMembers(name string, known map[string]bool) []string {
	members, ok := e.Members[name]
	if !ok {
		return nil
	}

	result := make([]string, 0, len(members))
	for _, member := range members {
		if known[member] {
			result = append(result, member)
		}
	}

	return result
}
