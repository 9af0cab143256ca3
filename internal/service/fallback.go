package service

import (
	"math/rand"

	"github.com/shree6791/gramvana/internal/models"
)

// fallbackDefaultProtein is the protein assigned to a canned recipe when the
// request resolves no target at all, e.g. a pre-onboarding user with no body
// weight on record.
const fallbackDefaultProtein = 15

// fallbackTable is the fixed set of canned vegetarian recipes used when the
// generation backend is unreachable or returns garbage. Protein is zero here;
// the generator overwrites it with the resolved target at pick time. The
// table is a non-empty constant, so fallback generation cannot come up empty.
var fallbackTable = []models.Recipe{
	{
		Title:    "Tofu Scramble with Spinach and Nutritional Yeast",
		Image:    "https://images.unsplash.com/photo-1511690078903-71de64ac9c54?auto=format&fit=crop&w=1364&q=80",
		PrepTime: 15,
		Calories: 320,
		Carbs:    12,
		Fat:      18,
		Tags:     models.JSONBStringArray{"high-protein", "quick", "breakfast"},
		KeyBenefits: models.JSONBStringArray{
			"Complete protein", "Iron-rich", "B12 fortified",
		},
		Ingredients: models.JSONBStringArray{
			"14oz firm tofu, pressed and crumbled",
			"2 tbsp nutritional yeast",
			"1 cup spinach, chopped",
			"1/4 cup red bell pepper, diced",
			"1/4 cup onion, diced",
			"1 tbsp olive oil",
			"1/2 tsp turmeric",
			"1/4 tsp black salt (kala namak)",
			"Salt and pepper to taste",
		},
		Instructions: models.JSONBStringArray{
			"Press tofu to remove excess water and crumble into a bowl",
			"Heat olive oil in a pan over medium heat",
			"Add onion and bell pepper, saute until softened",
			"Add crumbled tofu, turmeric, and black salt",
			"Cook for 5-6 minutes, stirring occasionally",
			"Add spinach and cook until wilted",
			"Sprinkle nutritional yeast and mix well",
			"Season with salt and pepper to taste",
		},
		MealType:      models.MealBreakfast,
		DietaryLabels: models.JSONBStringArray{"Vegan", "Gluten-Free", "High-Protein"},
	},
	{
		Title:    "Lentil and Quinoa Power Bowl",
		Image:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=1470&q=80",
		PrepTime: 25,
		Calories: 450,
		Carbs:    65,
		Fat:      10,
		Tags:     models.JSONBStringArray{"high-protein", "lunch", "meal-prep"},
		KeyBenefits: models.JSONBStringArray{
			"Complete amino acids", "Fiber-rich", "Sustained energy",
		},
		Ingredients: models.JSONBStringArray{
			"1 cup cooked lentils",
			"1/2 cup cooked quinoa",
			"1 cup roasted vegetables (sweet potato, broccoli, bell peppers)",
			"1/4 cup hummus",
			"1 tbsp tahini",
			"1 tbsp lemon juice",
			"1 tsp cumin",
			"Fresh herbs (parsley, cilantro)",
			"Salt and pepper to taste",
		},
		Instructions: models.JSONBStringArray{
			"Combine lentils and quinoa in a bowl",
			"Add roasted vegetables",
			"Top with a dollop of hummus",
			"Drizzle with tahini and lemon juice",
			"Sprinkle with cumin and fresh herbs",
			"Season with salt and pepper",
			"Mix gently before eating",
		},
		MealType:      models.MealLunch,
		DietaryLabels: models.JSONBStringArray{"Vegan", "Gluten-Free", "High-Protein", "High-Fiber"},
	},
	{
		Title:    "Tempeh and Vegetable Stir-Fry",
		Image:    "https://images.unsplash.com/photo-1512058564366-18510be2db19?auto=format&fit=crop&w=1472&q=80",
		PrepTime: 20,
		Calories: 380,
		Carbs:    30,
		Fat:      16,
		Tags:     models.JSONBStringArray{"high-protein", "dinner", "quick"},
		KeyBenefits: models.JSONBStringArray{
			"Fermented protein", "Gut health", "Antioxidant-rich",
		},
		Ingredients: models.JSONBStringArray{
			"8oz tempeh, cubed",
			"2 cups mixed vegetables (broccoli, carrots, snap peas)",
			"2 cloves garlic, minced",
			"1 tbsp ginger, grated",
			"2 tbsp tamari or soy sauce",
			"1 tbsp sesame oil",
			"1 tbsp maple syrup",
			"1 tsp sriracha (optional)",
			"1 tbsp sesame seeds",
			"Green onions for garnish",
		},
		Instructions: models.JSONBStringArray{
			"Cut tempeh into cubes and steam for 10 minutes",
			"In a wok or large pan, heat sesame oil over medium-high heat",
			"Add garlic and ginger, saute for 30 seconds",
			"Add tempeh and cook until browned on all sides",
			"Add vegetables and stir-fry for 5-7 minutes",
			"In a small bowl, mix tamari, maple syrup, and sriracha",
			"Pour sauce over the stir-fry and toss to coat",
			"Garnish with sesame seeds and green onions",
		},
		MealType:      models.MealDinner,
		DietaryLabels: models.JSONBStringArray{"Vegan", "High-Protein"},
	},
	{
		Title:    "Protein-Packed Chickpea Salad",
		Image:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=1470&q=80",
		PrepTime: 15,
		Calories: 350,
		Carbs:    45,
		Fat:      12,
		Tags:     models.JSONBStringArray{"high-protein", "lunch", "quick"},
		KeyBenefits: models.JSONBStringArray{
			"Fiber-rich", "Heart-healthy", "Sustained energy",
		},
		Ingredients: models.JSONBStringArray{
			"2 cups chickpeas, cooked",
			"1 cucumber, diced",
			"1 bell pepper, diced",
			"1/4 cup red onion, finely chopped",
			"1/4 cup kalamata olives, sliced",
			"1/4 cup feta cheese (optional, omit for vegan)",
			"2 tbsp olive oil",
			"1 tbsp lemon juice",
			"1 tsp dried oregano",
			"Salt and pepper to taste",
		},
		Instructions: models.JSONBStringArray{
			"Combine chickpeas, cucumber, bell pepper, red onion, and olives in a bowl",
			"If using, add crumbled feta cheese",
			"In a small bowl, whisk together olive oil, lemon juice, and oregano",
			"Pour dressing over the salad and toss to combine",
			"Season with salt and pepper",
			"Refrigerate for 30 minutes before serving for best flavor",
		},
		MealType:      models.MealLunch,
		DietaryLabels: models.JSONBStringArray{"Vegetarian", "Gluten-Free", "High-Protein"},
	},
	{
		Title:    "Seitan and Vegetable Stir-Fry",
		Image:    "https://images.unsplash.com/photo-1512058564366-18510be2db19?auto=format&fit=crop&w=1472&q=80",
		PrepTime: 20,
		Calories: 400,
		Carbs:    25,
		Fat:      14,
		Tags:     models.JSONBStringArray{"high-protein", "dinner", "quick"},
		KeyBenefits: models.JSONBStringArray{
			"Complete protein", "Low-carb", "Vitamin-rich",
		},
		Ingredients: models.JSONBStringArray{
			"8oz seitan, sliced",
			"2 cups mixed vegetables (broccoli, bell peppers, carrots)",
			"2 cloves garlic, minced",
			"1 tbsp ginger, grated",
			"2 tbsp tamari or soy sauce",
			"1 tbsp sesame oil",
			"1 tbsp rice vinegar",
			"1 tsp maple syrup",
			"1 tbsp cornstarch mixed with 2 tbsp water",
			"Sesame seeds and green onions for garnish",
		},
		Instructions: models.JSONBStringArray{
			"Heat sesame oil in a wok or large pan over medium-high heat",
			"Add garlic and ginger, saute for 30 seconds",
			"Add seitan and cook until browned, about 3-4 minutes",
			"Add vegetables and stir-fry for 5-7 minutes until crisp-tender",
			"In a small bowl, mix tamari, rice vinegar, and maple syrup",
			"Pour sauce over the stir-fry",
			"Add cornstarch slurry and cook until sauce thickens",
			"Garnish with sesame seeds and green onions",
		},
		MealType:      models.MealDinner,
		DietaryLabels: models.JSONBStringArray{"Vegan", "High-Protein"},
	},
	{
		Title:    "Greek Yogurt Protein Bowl",
		Image:    "https://images.unsplash.com/photo-1488477181946-6428a0291777?auto=format&fit=crop&w=1470&q=80",
		PrepTime: 5,
		Calories: 250,
		Carbs:    20,
		Fat:      8,
		Tags:     models.JSONBStringArray{"high-protein", "snack", "quick"},
		KeyBenefits: models.JSONBStringArray{
			"Muscle recovery", "Gut health", "Calcium-rich",
		},
		Ingredients: models.JSONBStringArray{
			"1 cup Greek yogurt",
			"1 tbsp honey or maple syrup",
			"1/4 cup mixed berries",
			"1 tbsp chia seeds",
			"1 tbsp hemp seeds",
			"1 tbsp almond butter",
			"1/4 tsp vanilla extract",
			"Pinch of cinnamon",
		},
		Instructions: models.JSONBStringArray{
			"Add Greek yogurt to a bowl",
			"Drizzle with honey or maple syrup",
			"Top with mixed berries, chia seeds, and hemp seeds",
			"Add a dollop of almond butter",
			"Sprinkle with cinnamon and add vanilla extract",
			"Mix gently before eating",
		},
		MealType:      models.MealSnack,
		DietaryLabels: models.JSONBStringArray{"Vegetarian", "Gluten-Free", "High-Protein"},
	},
	{
		Title:    "Protein-Packed Edamame Hummus with Veggie Sticks",
		Image:    "https://images.unsplash.com/photo-1505576399279-565b52d4ac71?auto=format&fit=crop&w=1470&q=80",
		PrepTime: 10,
		Calories: 220,
		Carbs:    18,
		Fat:      12,
		Tags:     models.JSONBStringArray{"high-protein", "snack", "vegan"},
		KeyBenefits: models.JSONBStringArray{
			"Complete protein", "Fiber-rich", "Heart-healthy",
		},
		Ingredients: models.JSONBStringArray{
			"1 cup shelled edamame, cooked",
			"1/4 cup chickpeas, cooked",
			"2 tbsp tahini",
			"1 tbsp olive oil",
			"1 tbsp lemon juice",
			"1 clove garlic",
			"1/4 tsp cumin",
			"Salt and pepper to taste",
			"Assorted vegetable sticks (carrots, celery, bell peppers)",
		},
		Instructions: models.JSONBStringArray{
			"Combine edamame, chickpeas, tahini, olive oil, lemon juice, garlic, and cumin in a food processor",
			"Blend until smooth, adding water if needed to reach desired consistency",
			"Season with salt and pepper to taste",
			"Transfer to a bowl and serve with vegetable sticks",
		},
		MealType:      models.MealSnack,
		DietaryLabels: models.JSONBStringArray{"Vegan", "Gluten-Free", "High-Protein"},
	},
	{
		Title:    "Protein Energy Balls",
		Image:    "https://images.unsplash.com/photo-1490567674331-72de84996c6a?auto=format&fit=crop&w=1470&q=80",
		PrepTime: 15,
		Calories: 180,
		Carbs:    15,
		Fat:      10,
		Tags:     models.JSONBStringArray{"high-protein", "snack", "no-bake"},
		KeyBenefits: models.JSONBStringArray{
			"Sustained energy", "Portable protein", "Nutrient-dense",
		},
		Ingredients: models.JSONBStringArray{
			"1 cup rolled oats",
			"1/2 cup plant-based protein powder",
			"1/2 cup nut butter (almond, peanut, or cashew)",
			"1/4 cup ground flaxseed",
			"3 tbsp maple syrup or honey",
			"2 tbsp mini dark chocolate chips",
			"1 tsp vanilla extract",
			"Pinch of salt",
		},
		Instructions: models.JSONBStringArray{
			"Combine all ingredients in a large bowl",
			"Mix well until a dough forms",
			"If mixture is too dry, add a little water or plant milk",
			"Roll into 1-inch balls",
			"Refrigerate for at least 30 minutes before serving",
			"Store in an airtight container in the refrigerator for up to a week",
		},
		MealType:      models.MealSnack,
		DietaryLabels: models.JSONBStringArray{"Vegetarian", "High-Protein"},
	},
}

// pickFallback selects a canned recipe: uniformly at random among entries
// matching the requested meal type, or from the whole table when none match.
// The returned value is a deep copy; caller mutations never reach the table.
func pickFallback(mealType models.MealType) models.Recipe {
	var candidates []int
	for i := range fallbackTable {
		if fallbackTable[i].MealType == mealType {
			candidates = append(candidates, i)
		}
	}

	var picked models.Recipe
	if len(candidates) == 0 {
		picked = fallbackTable[rand.Intn(len(fallbackTable))]
	} else {
		picked = fallbackTable[candidates[rand.Intn(len(candidates))]]
	}

	picked.Tags = cloneStrings(picked.Tags)
	picked.KeyBenefits = cloneStrings(picked.KeyBenefits)
	picked.Ingredients = cloneStrings(picked.Ingredients)
	picked.Instructions = cloneStrings(picked.Instructions)
	picked.DietaryLabels = cloneStrings(picked.DietaryLabels)
	return picked
}

func cloneStrings(a models.JSONBStringArray) models.JSONBStringArray {
	if a == nil {
		return nil
	}
	return append(models.JSONBStringArray(nil), a...)
}
