// Package entity defines the core business entities for the domain layer.
package entity

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the category type is one of the known values.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Matches reports whether a transaction of the given type may be filed under this category type.
func (t CategoryType) Matches(tt TransactionType) bool {
	return string(t) == string(tt)
}

// Category represents a transaction category. Categories are a fixed catalog shared by every
// user; they are not user editable.
type Category struct {
	ID    string
	Name  string
	Type  CategoryType
	Icon  string
	Color string
}

// DefaultCategories returns a fresh copy of the seeded category catalog.
// Expense categories come first, in display order, followed by the income ones.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat1", Name: "Food & Dining", Type: CategoryTypeExpense, Icon: "fa-utensils", Color: "#EF4444"},
		{ID: "cat2", Name: "Transport", Type: CategoryTypeExpense, Icon: "fa-car", Color: "#F59E0B"},
		{ID: "cat3", Name: "Shopping", Type: CategoryTypeExpense, Icon: "fa-shopping-cart", Color: "#10B981"},
		{ID: "cat4", Name: "Entertainment", Type: CategoryTypeExpense, Icon: "fa-gamepad", Color: "#8B5CF6"},
		{ID: "cat5", Name: "Housing", Type: CategoryTypeExpense, Icon: "fa-home", Color: "#3B82F6"},
		{ID: "cat6", Name: "Medical", Type: CategoryTypeExpense, Icon: "fa-heartbeat", Color: "#EC4899"},
		{ID: "cat7", Name: "Salary", Type: CategoryTypeIncome, Icon: "fa-money-bill-wave", Color: "#10B981"},
		{ID: "cat8", Name: "Investments", Type: CategoryTypeIncome, Icon: "fa-chart-line", Color: "#6366F1"},
		{ID: "cat9", Name: "Other Income", Type: CategoryTypeIncome, Icon: "fa-plus-circle", Color: "#94A3B8"},
	}
}

// FindCategory returns the category with the given ID, if present.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
