package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// SeedOptions carries values the seed cannot derive itself.
type SeedOptions struct {
	// PasswordHash is stored for every sample user.
	PasswordHash string
	Now          time.Time
}

// Seed loads the sample catalogue used by the in-memory store. It is a no-op
// when users already exist.
func Seed(ctx context.Context, client *Client, opts SeedOptions) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return client.WithTx(ctx, func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		users := []models.User{
			{Name: "Admin User", Email: "admin@example.com", PasswordHash: opts.PasswordHash, Role: enums.UserRoleAdmin},
			{Name: "Staff User", Email: "staff@example.com", PasswordHash: opts.PasswordHash, Role: enums.UserRoleStaff},
		}
		categories := []models.Category{
			{Name: "Electronics", Description: strPtr("Electronic products")},
			{Name: "Furniture", Description: strPtr("Furniture items")},
			{Name: "Clothing", Description: strPtr("Clothing items")},
		}
		suppliers := []models.Supplier{
			{Name: "Tech Supplier Co.", Email: strPtr("contact@techsupply.com"), Phone: strPtr("555-0001"), Address: strPtr("123 Tech Street")},
			{Name: "Furniture World", Email: strPtr("info@furnitureworld.com"), Phone: strPtr("555-0002"), Address: strPtr("456 Furniture Ave")},
		}
		products := []models.Product{
			{Name: "Laptop", Category: "Electronics", Supplier: "Tech Supplier Co.", Stock: 50, Price: decimal.RequireFromString("999.99")},
			{Name: "Office Chair", Category: "Furniture", Supplier: "Furniture World", Stock: 25, Price: decimal.RequireFromString("299.99")},
			{Name: "T-Shirt", Category: "Clothing", Supplier: "Tech Supplier Co.", Stock: 100, Price: decimal.RequireFromString("29.99")},
		}

		for _, rows := range []any{&users, &categories, &suppliers, &products} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}

		orders := []models.Order{
			{CustomerName: "John Doe", OrderDate: now.Add(-48 * time.Hour), Status: enums.OrderStatusDelivered},
			{CustomerName: "Jane Smith", OrderDate: now.Add(-24 * time.Hour), Status: enums.OrderStatusPending},
		}
		if err := tx.Omit("Items").Create(&orders).Error; err != nil {
			return err
		}

		items := []models.OrderItem{
			{OrderID: orders[0].ID, ProductID: products[1].ID, Quantity: 1, Price: products[1].Price},
			{OrderID: orders[1].ID, ProductID: products[2].ID, Quantity: 3, Price: products[2].Price},
		}
		return tx.Omit("Product").Create(&items).Error
	})
}

func strPtr(v string) *string {
	return &v
}
