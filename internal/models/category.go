package models

// Category is one of the fixed set of expense categories. The set is closed:
// both request validation and analytics grouping key off this single enum.
type Category string

const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryGroceries      Category = "Groceries"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTravel         Category = "Travel"
	CategoryPersonalCare   Category = "Personal Care"
	CategoryOther          Category = "Other"
)

// Categories lists every valid expense category in presentation order.
func Categories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryGroceries,
		CategoryTransportation,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBillsUtilities,
		CategoryHealthcare,
		CategoryEducation,
		CategoryTravel,
		CategoryPersonalCare,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}
