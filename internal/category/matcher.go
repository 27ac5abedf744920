// Package category maps free-form merchant or note text to a spending category.
package category

import "strings"

// Fallback is returned when no keyword matches the input.
const Fallback = "Other"

// keywordSet pairs a category label with the keywords that select it.
// Declaration order is significant: the first category with a matching
// keyword wins, so the table must stay a slice, never a map.
type keywordSet struct {
	label    string
	keywords []string
}

var table = []keywordSet{
	{"Dining", []string{
		"restaurant", "diner", "food", "snack", "takeout", "hotpot",
		"barbecue", "coffee", "bubble tea", "breakfast", "lunch", "dinner",
		"canteen", "eatery", "fast food", "noodle", "bistro",
	}},
	{"Shopping", []string{
		"supermarket", "mall", "convenience store", "online order", "taobao",
		"jd.com", "pinduoduo", "store", "department", "market", "outlet",
		"shopping center", "e-commerce",
	}},
	{"Transport", []string{
		"subway", "bus", "taxi", "didi", "high-speed rail", "train",
		"flight", "airfare", "fuel", "parking", "car", "ride hail",
		"cycling", "bike share", "fare",
	}},
	{"Entertainment", []string{
		"movie", "ktv", "game", "travel", "attraction", "admission",
		"show", "concert", "gym", "sports", "amusement park", "bar",
		"arcade",
	}},
	{"Housing", []string{
		"rent", "water bill", "electricity", "gas", "property fee",
		"renovation", "furniture", "appliance", "broadband", "heating",
	}},
	{"Medical", []string{
		"hospital", "pharmacy", "clinic", "checkup", "registration",
		"medicine", "doctor", "medical", "healthcare",
	}},
	{"Education", []string{
		"tuition", "training", "bookstore", "stationery", "course",
		"exam", "study", "textbook", "tutoring",
	}},
	{"Communication", []string{
		"phone bill", "data plan", "mobile", "telephone", "top-up",
		"broadband fee",
	}},
}

// Labels returns the category labels in their match-priority order.
// The fallback label is not included.
func Labels() []string {
	labels := make([]string, len(table))
	for i, set := range table {
		labels[i] = set.label
	}
	return labels
}

// Categorize returns the first category whose keywords appear in text.
// Matching is case-insensitive substring containment, evaluated in table
// order. Empty or whitespace-only text yields the fallback label; the
// function never fails.
func Categorize(text string) string {
	if strings.TrimSpace(text) == "" {
		return Fallback
	}

	lower := strings.ToLower(text)
	for _, set := range table {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return set.label
			}
		}
	}
	return Fallback
}
