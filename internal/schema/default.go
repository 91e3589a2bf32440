package schema

import (
	"fmt"
	"math/rand"
)

// Value ranges for the stock generators.
const (
	revenueMin   = 1000
	revenueMax   = 100000
	priceMin     = 10
	priceMax     = 1000
	inventoryMax = 500
	amountSteps  = 100
	amountUnit   = 10
	salaryMin    = 30000
	salaryMax    = 120000
)

func pick(r *rand.Rand, options ...string) string {
	return options[r.Intn(len(options))]
}

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func genName(r *rand.Rand) any {
	return pick(r, "John", "Jane", "Bob", "Alice", "Charlie", "Eve")
}

func genEmail(r *rand.Rand) any {
	return pick(r, "john", "jane", "bob") + "@example.com"
}

func genRevenue(r *rand.Rand) any {
	return between(r, revenueMin, revenueMax)
}

func genRegion(r *rand.Rand) any {
	return pick(r, "North", "South", "East", "West")
}

func genDate(r *rand.Rand) any {
	return fmt.Sprintf("2023-%02d-%02d", between(r, 1, 12), between(r, 1, 28))
}

func genPrice(r *rand.Rand) any {
	return between(r, priceMin, priceMax)
}

func genInventory(r *rand.Rand) any {
	return between(r, 0, inventoryMax)
}

func genAmount(r *rand.Rand) any {
	return between(r, 1, amountSteps) * amountUnit
}

func genSalary(r *rand.Rand) any {
	return between(r, salaryMin, salaryMax)
}

func genCategory(r *rand.Rand) any {
	return pick(r, "Electronics", "Clothing", "Food", "Furniture")
}

// Default returns the stock analytics catalog: customers, products, sales,
// and employees. Columns without a generator (supplier, join_date, hire_date,
// department) synthesize to an empty placeholder.
func Default() *Registry {
	return NewRegistry(
		Table{
			Name: "customers",
			Columns: []Column{
				{Name: "id", Class: ClassIdentifier},
				{Name: "name", Class: ClassTextual, Generate: genName},
				{Name: "email", Class: ClassTextual, Generate: genEmail},
				{Name: "revenue", Class: ClassMeasurable, Generate: genRevenue},
				{Name: "region", Class: ClassCategorical, Generate: genRegion},
				{Name: "join_date", Class: ClassTemporal},
			},
		},
		Table{
			Name: "products",
			Columns: []Column{
				{Name: "id", Class: ClassIdentifier},
				{Name: "name", Class: ClassTextual, Generate: genName},
				{Name: "category", Class: ClassCategorical, Generate: genCategory},
				{Name: "price", Class: ClassMeasurable, Generate: genPrice},
				{Name: "inventory", Class: ClassMeasurable, Generate: genInventory},
				{Name: "supplier", Class: ClassTextual},
			},
		},
		Table{
			Name: "sales",
			Columns: []Column{
				{Name: "id", Class: ClassIdentifier},
				{Name: "product_id", Class: ClassForeignKey},
				{Name: "customer_id", Class: ClassForeignKey},
				{Name: "amount", Class: ClassMeasurable, Generate: genAmount},
				{Name: "date", Class: ClassTemporal, Generate: genDate},
				{Name: "region", Class: ClassCategorical, Generate: genRegion},
			},
		},
		Table{
			Name: "employees",
			Columns: []Column{
				{Name: "id", Class: ClassIdentifier},
				{Name: "name", Class: ClassTextual, Generate: genName},
				{Name: "department", Class: ClassCategorical},
				{Name: "salary", Class: ClassMeasurable, Generate: genSalary},
				{Name: "hire_date", Class: ClassTemporal},
			},
		},
	)
}
