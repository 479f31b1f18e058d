package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/config"
	"github.com/myrecipebox/backend/internal/database"
	"github.com/myrecipebox/backend/internal/models"
	"github.com/myrecipebox/backend/internal/service"
)

type seedRecipe struct {
	name         string
	ingredients  string
	instructions string
	category     string
}

var defaultRecipes = []seedRecipe{
	{
		"Vegan Pancakes",
		"1 cup flour\n1 tbsp sugar\n1 tbsp baking powder\n1/4 tsp salt\n1 cup almond milk\n1 tbsp vegetable oil\n1 tsp vanilla extract",
		"1. In a bowl, mix flour, sugar, baking powder, and salt.\n2. Add almond milk, vegetable oil, and vanilla, mix until smooth.\n3. Heat a non-stick skillet over medium heat and pour batter into circles.\n4. Cook until bubbles form on the surface, then flip and cook until golden brown.",
		models.CategoryBreakfast,
	},
	{
		"Tofu Scramble",
		"1 block firm tofu, crumbled\n1 tbsp olive oil\n1/2 onion, diced\n1/2 bell pepper, diced\n1/2 tsp turmeric\nSalt and pepper to taste",
		"1. Heat olive oil in a pan and saute onion and bell pepper until soft.\n2. Add crumbled tofu, turmeric, salt, and pepper.\n3. Cook for 5-7 minutes, stirring occasionally.",
		models.CategoryBreakfast,
	},
	{
		"Vegan Chocolate Cake",
		"1 1/2 cups flour\n1 cup sugar\n1/2 cup cocoa powder\n1 tsp baking powder\n1/2 tsp baking soda\n1/2 tsp salt\n1 cup almond milk\n1/2 cup vegetable oil\n1 tsp vanilla extract\n1 tbsp vinegar",
		"1. Preheat oven to 350F (175C).\n2. In a large bowl, mix all dry ingredients.\n3. Add wet ingredients and mix until smooth.\n4. Pour into a greased cake pan and bake for 30-35 minutes.",
		models.CategoryDessert,
	},
	{
		"Vegan Tacos",
		"12 corn tortillas\n2 cups cooked black beans\n1 avocado, sliced\n1 cup salsa\n1/2 cup cilantro, chopped\nLime wedges for serving",
		"1. Heat tortillas in a skillet.\n2. Fill with black beans, avocado slices, salsa, and cilantro.\n3. Serve with lime wedges.",
		models.CategoryDinner,
	},
	{
		"Vegan Hummus Wrap",
		"1 whole wheat tortilla\n1/2 cup hummus\n1 cup spinach\n1/2 cucumber, sliced\n1/4 cup shredded carrots",
		"1. Spread hummus on the tortilla.\n2. Add spinach, cucumber, and carrots.\n3. Roll up and serve.",
		models.CategoryLunch,
	},
	{
		"Greek Salad",
		"2 cups chopped romaine\n1/2 cup cucumber, diced\n1/4 cup red onion, sliced\n1/4 cup feta cheese\n1/4 cup kalamata olives\n2 tbsp olive oil\n1 tbsp red wine vinegar",
		"1. Toss romaine, cucumber, red onion, feta, and olives.\n2. Drizzle with olive oil and red wine vinegar.\n3. Serve chilled.",
		models.CategorySalads,
	},
	{
		"Vegan Tomato Soup",
		"4 cups tomatoes, diced\n1 onion, chopped\n3 cloves garlic, minced\n1 cup vegetable broth\n1 tbsp olive oil\nSalt and pepper to taste",
		"1. Saute onion and garlic in olive oil.\n2. Add tomatoes and vegetable broth.\n3. Simmer for 20 minutes, then blend until smooth.",
		models.CategorySoup,
	},
	{
		"Vegan Energy Balls",
		"1 cup oats\n1/2 cup peanut butter\n1/4 cup maple syrup\n1/2 cup dark chocolate chips\n1/4 cup chia seeds",
		"1. Mix all ingredients in a bowl.\n2. Roll into small balls.\n3. Chill in the fridge for 1 hour before serving.",
		models.CategorySnacks,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	admin, err := ensureAdmin(ctx, db)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	recipes := service.NewRecipeService(db)
	seeded := 0
	for _, r := range defaultRecipes {
		_, err := recipes.Create(ctx, admin.ID, service.CreateRecipeInput{
			Name:         r.name,
			Ingredients:  r.ingredients,
			Instructions: r.instructions,
			Category:     r.category,
		})
		switch {
		case err == nil:
			seeded++
		case errors.Is(err, service.ErrDuplicateName):
			// already seeded on a previous run
		default:
			log.Fatalf("Failed to seed recipe %q: %v", r.name, err)
		}
	}
	log.Printf("Seeded %d recipes for user %s", seeded, admin.Username)
}

func ensureAdmin(ctx context.Context, db *gorm.DB) (*models.User, error) {
	var admin models.User
	err := db.WithContext(ctx).Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: string(hashed),
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
