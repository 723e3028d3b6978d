package seeders

import (
	"fmt"

	"festa-pos/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultProducts is the festival menu.
func DefaultProducts() []models.Product {
	return []models.Product{
		{ID: "tea", Name: "お茶席", Price: 700, Category: models.CategoryTicket, Color: "#6E6702", SortOrder: 1, Active: true},
		{ID: "manju", Name: "紅白饅頭", Price: 500, Category: models.CategoryFood, Color: "#C05805", SortOrder: 2, Active: true},
		{ID: "custom", Name: "カスタム", Price: 0, Category: models.CategoryCustom, Color: "#8B4513", SortOrder: 3, Active: true},
		{ID: "latte", Name: "抹茶ラテ", Price: 500, Category: models.CategoryDrink, Color: "#2E2300", SortOrder: 4, Active: true},
		{ID: "latte_topping", Name: "抹茶ラテ(トッピング)", Price: 600, Category: models.CategoryDrink, Color: "#DE9501", SortOrder: 5, Active: true},
	}
}

type seedUser struct {
	username string
	password string
	role     string
}

func defaultUsers() []seedUser {
	return []seedUser{
		{"admin", "admin123", models.RoleAdmin},
		{"staff", "staff123", models.RoleStaff},
		{"kitchen", "kitchen123", models.RoleKitchen},
	}
}

func SeedProducts(db *gorm.DB) error {
	for _, product := range DefaultProducts() {
		p := product
		if err := db.Where(models.Product{ID: p.ID}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func SeedUsers(db *gorm.DB) error {
	for _, u := range defaultUsers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Username: u.username, Password: string(hash), Role: u.role}
		if err := db.Where(models.User{Username: u.username}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}
	return nil
}

// Seed inserts missing users and products; existing rows are left alone.
func Seed(db *gorm.DB) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	if err := SeedProducts(db); err != nil {
		return err
	}
	log.Info().Int("users", len(defaultUsers())).Int("products", len(DefaultProducts())).Msg("seeding done")
	return nil
}
