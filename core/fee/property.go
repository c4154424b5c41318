package fee

import "barodeal/core/types"

// DefaultCategory is what any property type outside the four form choices
// is priced as. This silently widens the house schedule to unknown input, so
// NormalizeProperty reports when it happens and the engine logs it.
const DefaultCategory = types.CategoryHouse

var propertyCategories = map[types.PropertyType]types.PropertyCategory{
	types.PropertyHouse:        types.CategoryHouse,
	types.PropertyOfficetel:    types.CategoryOfficetel,
	types.PropertyPreSaleRight: types.CategoryHouse,
	types.PropertyOther:        types.CategoryNonHousing,
}

// NormalizeProperty maps a form property type to its schedule category.
// defaulted is true when p was not recognised and DefaultCategory was used.
func NormalizeProperty(p types.PropertyType) (category types.PropertyCategory, defaulted bool) {
	if c, ok := propertyCategories[p]; ok {
		return c, false
	}
	return DefaultCategory, true
}
