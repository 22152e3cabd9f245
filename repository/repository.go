// Package repository owns every write against the extracted schema.
package repository

import (
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/config"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/models"
)

// batchSize bounds how many rows go into a single INSERT statement.
const batchSize = 100

// WriteError wraps a failed batch commit. The whole batch for that entity
// type has been rolled back when this is returned.
type WriteError struct {
	Entity string
	Err    error
}

func (e *WriteError) Error() string { return fmt.Sprintf("save %s: %v", e.Entity, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// UpsertUsers merges users on their external id: insert if absent, otherwise
// overwrite every non-key column. The whole call is one transaction.
func UpsertUsers(db *gorm.DB, users []models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(users, batchSize).Error
	})
	if err != nil {
		return 0, &WriteError{Entity: "users", Err: err}
	}
	return len(users), nil
}

// UpsertCarts merges carts on their external id and writes their line items
// in the same transaction. Carts are overwritten in place; line items are
// plain inserts, so under LineItemAppend a rerun of the same cart
// accumulates duplicate rows. LineItemReplace clears the cart's rows first.
// Returns carts saved and line items inserted.
func UpsertCarts(db *gorm.DB, carts []models.Cart, policy config.LineItemPolicy) (int, int, error) {
	if len(carts) == 0 {
		return 0, 0, nil
	}

	var items []models.CartProduct
	for _, cart := range carts {
		for _, p := range cart.Products {
			p.ID = 0
			p.CartID = cart.ID
			items = append(items, p)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(carts, batchSize).Error; err != nil {
			return err
		}

		if policy == config.LineItemReplace {
			cartIDs := lo.Map(carts, func(c models.Cart, _ int) int { return c.ID })
			if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartProduct{}).Error; err != nil {
				return err
			}
		}

		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, batchSize).Error
	})
	if err != nil {
		return 0, 0, &WriteError{Entity: "carts", Err: err}
	}
	return len(carts), len(items), nil
}
