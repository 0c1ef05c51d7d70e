package balance

// CategoryKind enumerates the kinds of expense categories.
//
// The kind decides which persons share an expense, see Eligible.
type CategoryKind uint8

const (
	KindGeneral CategoryKind = iota
	KindDrinks
	KindCar
)

// Category is the parsed form of an expense category.
//
// For KindCar, Car holds the car identifier the category is bound to.
// For all other kinds, Car is empty.
type Category struct {
	Kind CategoryKind
	Car  string
}

const (
	categoryGeneral = "general"
	categoryDrinks  = "drinks"
)

// General returns the category shared by all persons.
func General() Category {
	return Category{Kind: KindGeneral}
}

// Drinks returns the category shared by persons with the drinks opt-in.
func Drinks() Category {
	return Category{Kind: KindDrinks}
}

// Car returns the category for the car with the given identifier.
func Car(id string) Category {
	return Category{Kind: KindCar, Car: id}
}

// ParseCategory parses the stored string form of a category.
//
// "general" and "drinks" parse to their respective kinds, the empty string
// parses to general. Every other value is a car category bound to that
// value as its car identifier. Car categories with no matching person fall
// back to an even split over all persons, so an unknown category behaves
// like general.
func ParseCategory(s string) Category {
	switch s {
	case categoryGeneral, "":
		return General()
	case categoryDrinks:
		return Drinks()
	default:
		return Car(s)
	}
}

// String returns the stored string form of the category.
func (c Category) String() string {
	switch c.Kind {
	case KindDrinks:
		return categoryDrinks
	case KindCar:
		return c.Car
	default:
		return categoryGeneral
	}
}
