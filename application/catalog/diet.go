package catalog

import (
	"strings"

	"github.com/muhammadheryan/food-delivery/model"
)

// The diet and allergen checks below are keyword heuristics over free text the restaurant typed
// (diet label, note, name). They are a best-effort filter for browsing, not an allergy guarantee.

var dietKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "veg", "veggie", "paneer", "tofu"},
	"vegan":       {"vegan", "plant-based", "plant based", "dairy-free"},
	"gluten-free": {"gluten-free", "gluten free", "gf", "celiac"},
	"halal":       {"halal"},
	"keto":        {"keto", "low-carb", "low carb"},
}

// dietConflicts are words that rule an item out of a diet even when a keyword matched.
var dietConflicts = map[string][]string{
	"vegetarian": {"chicken", "beef", "pork", "mutton", "lamb", "fish", "prawn", "shrimp", "non-veg", "non veg", "egg"},
	"vegan":      {"chicken", "beef", "pork", "mutton", "lamb", "fish", "prawn", "shrimp", "egg", "cheese", "paneer", "butter", "cream", "milk", "honey", "non-veg"},
	"keto":       {"rice", "bread", "naan", "pasta", "noodle", "sugar"},
}

var allergenKeywords = map[string][]string{
	"nuts":      {"nut", "peanut", "almond", "cashew", "walnut", "pistachio", "hazelnut"},
	"dairy":     {"milk", "cheese", "butter", "cream", "paneer", "yogurt", "ghee", "dairy"},
	"gluten":    {"wheat", "bread", "naan", "pasta", "noodle", "gluten", "flour", "barley"},
	"shellfish": {"shrimp", "prawn", "crab", "lobster", "shellfish"},
	"egg":       {"egg", "mayonnaise", "mayo"},
	"soy":       {"soy", "tofu", "edamame"},
}

func itemText(item model.MenuItem) string {
	return strings.ToLower(strings.Join([]string{item.Diet, item.Note, item.Name, item.Description}, " "))
}

// MatchesDiet reports whether item looks suitable for diet. An empty or unknown diet matches everything.
func MatchesDiet(item model.MenuItem, diet string) bool {
	diet = strings.ToLower(strings.TrimSpace(diet))
	keywords, known := dietKeywords[diet]
	if diet == "" || !known {
		return true
	}

	// an explicit label wins over guessing from the text
	if label := strings.ToLower(strings.TrimSpace(item.Diet)); label != "" {
		if label == diet {
			return true
		}
		if diet == "vegetarian" && label == "vegan" {
			return true
		}
	}

	text := itemText(item)
	for _, w := range dietConflicts[diet] {
		if containsWord(text, w) {
			return false
		}
	}
	for _, k := range keywords {
		if containsWord(text, k) {
			return true
		}
	}
	return false
}

// ContainsAllergen reports whether the text of item mentions allergen.
func ContainsAllergen(item model.MenuItem, allergen string) bool {
	allergen = strings.ToLower(strings.TrimSpace(allergen))
	keywords, known := allergenKeywords[allergen]
	if !known {
		keywords = []string{allergen}
	}
	text := stripFreeOf(itemText(item), append([]string{allergen}, keywords...))
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// stripFreeOf blanks out "<word>-free" and "<word> free" so a "dairy-free crust" does not count
// as dairy while the "cheese" next to it still does.
func stripFreeOf(text string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		text = strings.ReplaceAll(text, w+"-free", " ")
		text = strings.ReplaceAll(text, w+" free", " ")
	}
	return text
}

// containsWord matches w only on letter boundaries, so "egg" does not match "eggplant".
func containsWord(text, w string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], w)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(w)
		if (start == 0 || !isLetter(text[start-1])) && (end == len(text) || !isLetter(text[end])) {
			return true
		}
		i = start + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// Available reports whether item can be ordered right now.
func Available(item model.MenuItem) bool {
	if item.Available != nil && !*item.Available {
		return false
	}
	return item.Stock > 0
}

// FilterMenu applies filter to items, keeping the original order.
func FilterMenu(items []model.MenuItem, filter model.MenuFilter) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if filter.InStockOnly && !Available(it) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(strings.TrimSpace(it.Category), strings.TrimSpace(filter.Category)) {
			continue
		}
		if !MatchesDiet(it, filter.Diet) {
			continue
		}
		excluded := false
		for _, a := range filter.ExcludeAllergens {
			if ContainsAllergen(it, a) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, it)
	}
	return out
}
