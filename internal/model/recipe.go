package model

// RecipeLine is one material requirement of a product's recipe: which
// material, which tank it is drawn from, and how much one batch consumes.
type RecipeLine struct {
	MaterialName     string  `json:"material_name"`
	TankID           int     `json:"tank_id"`
	QuantityPerBatch float64 `json:"quantity_per_batch"`
}

// Recipe is the ordered list of material requirements for a product,
// ordered by tank id ascending. An empty Lines slice means the product has
// no recipe on file: a valid outcome, distinct from a repository failure.
type Recipe struct {
	ProductName string       `json:"product_name"`
	Lines       []RecipeLine `json:"recipe"`
}

// Found reports whether any recipe lines exist for the product.
func (r Recipe) Found() bool {
	return len(r.Lines) > 0
}
