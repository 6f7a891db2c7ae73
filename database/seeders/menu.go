package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
)

// Menu is the starter menu. Images are expected under wwwroot/images.
var Menu = []models.MenuItem{
	{Name: "Spring Roll", Description: "Crisp rolls filled with seasoned vegetables.", Image: "images/spring_roll.jpg", Price: 7.99, Category: "Appetizer", SpecialTag: ""},
	{Name: "Samosa", Description: "Pastry stuffed with spiced potatoes and peas.", Image: "images/samosa.jpg", Price: 8.99, Category: "Appetizer", SpecialTag: "Best Seller"},
	{Name: "Hot and Sour Soup", Description: "Tangy broth with tofu, mushrooms and bamboo shoots.", Image: "images/soup.jpg", Price: 6.99, Category: "Appetizer", SpecialTag: ""},
	{Name: "Hakka Noodles", Description: "Stir-fried noodles with vegetables and soy.", Image: "images/noodles.jpg", Price: 11.99, Category: "Entrée", SpecialTag: ""},
	{Name: "Pav Bhaji", Description: "Spiced vegetable mash served with buttered rolls.", Image: "images/pav_bhaji.jpg", Price: 12.99, Category: "Entrée", SpecialTag: "Top Rated"},
	{Name: "Paneer Pizza", Description: "Tandoori paneer, peppers and onions on a thin crust.", Image: "images/pizza.jpg", Price: 14.99, Category: "Entrée", SpecialTag: "Chef's Special"},
	{Name: "Mango Lassi", Description: "Chilled yogurt drink blended with mango.", Image: "images/mango.jpg", Price: 4.99, Category: "Beverage", SpecialTag: ""},
	{Name: "Carrot Halwa", Description: "Slow-cooked carrot pudding with nuts.", Image: "images/carrot.jpg", Price: 5.99, Category: "Dessert", SpecialTag: ""},
	{Name: "Sweet Rolls", Description: "Soft rolls soaked in cardamom syrup.", Image: "images/sweet_rolls.jpg", Price: 5.49, Category: "Dessert", SpecialTag: "Top Rated"},
}

// SeedMenu inserts Menu when the menu table is empty.
func SeedMenu(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	items := append([]models.MenuItem(nil), Menu...)
	return db.WithContext(ctx).Create(&items).Error
}
