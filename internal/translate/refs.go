package translate

import (
	"github.com/querysim/querysim/internal/schema"
)

// SchemaReferences enumerates every table and column the mappers and
// translators can emit, paired with the table expected to own it. Feeding
// this to Registry.Verify at startup turns a translation-rule/registry
// mismatch into a refusal to start instead of a per-request surprise.
func SchemaReferences() []schema.Reference {
	refs := []schema.Reference{
		{Table: defaultEntity},
	}

	for _, rule := range entityRules {
		refs = append(refs, schema.Reference{Table: rule.result})
	}

	// Columns the attribute and metric chains can resolve, on their home
	// tables.
	refs = append(refs,
		schema.Reference{Table: "customers", Column: "revenue"},
		schema.Reference{Table: "products", Column: "price"},
		schema.Reference{Table: "products", Column: "inventory"},
		schema.Reference{Table: "sales", Column: "amount"},
		schema.Reference{Table: "employees", Column: "salary"},
	)

	// Fixed columns the temporal and count translators rely on.
	refs = append(refs,
		schema.Reference{Table: "sales", Column: "amount"},
		schema.Reference{Table: "sales", Column: "date"},
	)

	return refs
}
