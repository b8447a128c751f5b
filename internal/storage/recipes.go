package storage

import (
	"context"
	"fmt"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

// GetRecipe returns the recipe for a product, ordered by tank number
// ascending. The query is parameterized; the product name is never
// concatenated into SQL.
//
// A product with no recipe rows yields a Recipe with an empty, non-nil
// Lines slice and a nil error. Only transport or query failures return an
// error; callers rely on that distinction to tell "no recipe on file" from
// "database unreachable".
func (db *DB) GetRecipe(ctx context.Context, productName string) (model.Recipe, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT rm.name, rm.tank_number, pr.quantity
		FROM product_recipes pr
		JOIN raw_materials rm ON pr.material_id = rm.id
		JOIN products p ON pr.product_id = p.id
		WHERE p.name = $1
		ORDER BY rm.tank_number`,
		productName,
	)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("storage: query recipe for %q: %w", productName, err)
	}
	defer rows.Close()

	lines := []model.RecipeLine{}
	for rows.Next() {
		var line model.RecipeLine
		if err := rows.Scan(&line.MaterialName, &line.TankID, &line.QuantityPerBatch); err != nil {
			return model.Recipe{}, fmt.Errorf("storage: scan recipe line for %q: %w", productName, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return model.Recipe{}, fmt.Errorf("storage: read recipe rows for %q: %w", productName, err)
	}

	return model.Recipe{ProductName: productName, Lines: lines}, nil
}
