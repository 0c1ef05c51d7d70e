package balance

// Eligible determines which persons share an expense of the given category.
//
// Car categories select the persons assigned to that car, the drinks
// category selects the persons with the drinks opt-in and the general
// category selects everyone. If a car or drinks category matches nobody,
// all persons are selected so that an expense is never split zero ways.
//
// The result preserves the order of persons. It is re-evaluated per expense
// at computation time, so changing a person's attributes retroactively
// changes how past expenses are attributed.
func Eligible(category Category, persons []Person) []string {
	names := make([]string, 0, len(persons))

	switch category.Kind {
	case KindCar:
		for _, person := range persons {
			if person.Car == category.Car {
				names = append(names, person.Name)
			}
		}
	case KindDrinks:
		for _, person := range persons {
			if person.Drinks {
				names = append(names, person.Name)
			}
		}
	case KindGeneral:
		for _, person := range persons {
			names = append(names, person.Name)
		}
	}

	// Fall back to everyone so the share is never divided by zero
	if len(names) == 0 {
		for _, person := range persons {
			names = append(names, person.Name)
		}
	}

	return names
}
