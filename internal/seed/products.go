// Package seed holds the initial product catalog: 24 artisan products
// across the four category pages.
package seed

import "github.com/villagecraft/storefront/internal/models"

func Products() []models.Product {
	return []models.Product{
		// Water usage
		{Name: "Clay Water Pot", Price: 450, Image: "water1.jpg", Category: models.CategoryWaterUsage, Creator: "Rajesh", Description: "Handmade pot"},
		{Name: "Terracotta Jug", Price: 380, Image: "water2.jpg", Category: models.CategoryWaterUsage, Creator: "Meera", Description: "Carved jug"},
		{Name: "Matka Cooler", Price: 520, Image: "water3.jpg", Category: models.CategoryWaterUsage, Creator: "Arjun", Description: "Natural cooler"},
		{Name: "Hand-Painted Surahi", Price: 490, Image: "water4.jpg", Category: models.CategoryWaterUsage, Creator: "Priya", Description: "Floral design"},
		{Name: "Earthen Filter", Price: 680, Image: "water5.jpg", Category: models.CategoryWaterUsage, Creator: "Vikram", Description: "No electricity"},
		{Name: "Mini Matka Set", Price: 320, Image: "water6.jpg", Category: models.CategoryWaterUsage, Creator: "Kiran", Description: "Set of 3"},

		// Kitchen usage
		{Name: "Clay Cooking Pot", Price: 650, Image: "kitchen1.jpg", Category: models.CategoryKitchenUsage, Creator: "Vikram", Description: "Slow cooking"},
		{Name: "Earthen Griddle", Price: 280, Image: "kitchen2.jpg", Category: models.CategoryKitchenUsage, Creator: "Kiran", Description: "For roti"},
		{Name: "Surahi Pitcher", Price: 420, Image: "kitchen3.jpg", Category: models.CategoryKitchenUsage, Creator: "Rajesh", Description: "Serving"},
		{Name: "Clay Tawa", Price: 350, Image: "kitchen4.jpg", Category: models.CategoryKitchenUsage, Creator: "Sita", Description: "Even heat"},
		{Name: "Handi Set", Price: 890, Image: "kitchen5.jpg", Category: models.CategoryKitchenUsage, Creator: "Ramesh", Description: "3 pieces"},
		{Name: "Earthen Kadai", Price: 720, Image: "kitchen6.jpg", Category: models.CategoryKitchenUsage, Creator: "Meera", Description: "Deep fry"},

		// Jute products
		{Name: "Jute Shopping Bag", Price: 150, Image: "jute1.jpg", Category: models.CategoryJuteProducts, Creator: "Sita", Description: "Reusable"},
		{Name: "Jute Basket", Price: 220, Image: "jute2.jpg", Category: models.CategoryJuteProducts, Creator: "Ramesh", Description: "Storage"},
		{Name: "Jute Coasters", Price: 80, Image: "jute3.jpg", Category: models.CategoryJuteProducts, Creator: "Meera", Description: "Set of 6"},
		{Name: "Jute Wall Hanging", Price: 380, Image: "jute4.jpg", Category: models.CategoryJuteProducts, Creator: "Priya", Description: "Tribal art"},
		{Name: "Jute Table Runner", Price: 260, Image: "jute5.jpg", Category: models.CategoryJuteProducts, Creator: "Arjun", Description: "Natural"},
		{Name: "Jute Planter", Price: 190, Image: "jute6.jpg", Category: models.CategoryJuteProducts, Creator: "Rajesh", Description: "Biodegradable"},

		// Ceramic products
		{Name: "Ceramic Vase", Price: 915, Image: "ceramic20.jpg", Category: models.CategoryCeramicProducts, Creator: "Rajesh", Description: "Floral paint"},
		{Name: "Ceramic Bowl", Price: 900, Image: "ceramic21.jpg", Category: models.CategoryCeramicProducts, Creator: "Meera", Description: "Blue glaze"},
		{Name: "Ceramic Plate", Price: 820, Image: "ceramic22.jpg", Category: models.CategoryCeramicProducts, Creator: "Arjun", Description: "Microwave safe"},
		{Name: "Ceramic Mug", Price: 1000, Image: "ceramic23.jpg", Category: models.CategoryCeramicProducts, Creator: "Vikram", Description: "350ml"},
		{Name: "Ceramic Teapot", Price: 720, Image: "ceramic24.jpg", Category: models.CategoryCeramicProducts, Creator: "Kiran", Description: "Set with cups"},
		{Name: "Ceramic Sculpture", Price: 320, Image: "ceramic25.jpg", Category: models.CategoryCeramicProducts, Creator: "Rajesh", Description: "Abstract"},
	}
}
