package db

import (
	"context"

	"github.com/eventhub/backend/internal/model"
)

func (db *Postgres) GetCategoryList(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Category{}
	}
	return list, nil
}
