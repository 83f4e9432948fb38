package models

// Preferences is a user's stored dietary profile.
type Preferences struct {
	Traits            map[string]string `json:"traits"`
	Allergens         map[string]bool   `json:"allergens"`
	CustomPreferences string            `json:"custom_preferences"`
}

// DisallowedAllergens returns the allergens flagged true.
func (p *Preferences) DisallowedAllergens() map[string]struct{} {
	out := make(map[string]struct{})
	if p == nil {
		return out
	}
	for name, on := range p.Allergens {
		if on {
			out[name] = struct{}{}
		}
	}
	return out
}

func DefaultPreferences() Preferences {
	traits := map[string]string{}
	for _, t := range []string{
		"vegan", "vegetarian", "spicy", "kosher", "halal", "gluten-free",
		"nutrient dense low", "nutrient dense low medium", "nutrient dense medium",
		"nutrient dense medium high", "nutrient dense high",
	} {
		traits[t] = "neutral"
	}
	allergens := map[string]bool{}
	for _, a := range []string{
		"beef", "eggs", "fish", "milk", "oats", "peanuts", "pork", "sesame seed",
		"shellfish", "soy", "tree nuts", "wheat/barley/rye", "item is deep fried", "alcohol",
	} {
		allergens[a] = false
	}
	return Preferences{
		Traits:            traits,
		Allergens:         allergens,
		CustomPreferences: "Insert custom preferences here",
	}
}
