package models

// Category is the closed set of transaction categories.
type Category string

const (
	CategorySalary        Category = "Salary"
	CategoryDelivery      Category = "Delivery"
	CategoryOtherIncome   Category = "Other Income"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryLoans         Category = "Loans"
	CategoryEntertainment Category = "Entertainment"
	CategoryBakery        Category = "Bakery"
	CategoryOthers        Category = "Others"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategorySalary,
		CategoryDelivery,
		CategoryOtherIncome,
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryBills,
		CategoryLoans,
		CategoryEntertainment,
		CategoryBakery,
		CategoryOthers,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// FuelEligible reports whether litres/cost derivation applies to the category.
func (c Category) FuelEligible() bool {
	return c == CategoryTransport
}

// Income reports whether the category is normally used for income records.
func (c Category) Income() bool {
	switch c {
	case CategorySalary, CategoryDelivery, CategoryOtherIncome:
		return true
	}
	return false
}
