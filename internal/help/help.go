// Package help serves the static FAQ shown on the help screen.
package help

import "strings"

type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

var faq = []Section{
	{
		Title: "Getting Started",
		Items: []Item{
			{
				Question: "What is Nexus?",
				Answer:   "Nexus is a community marketplace platform that connects people to swap items, find lost belongings, ask for recommendations, and discover local businesses.",
			},
			{
				Question: "How do I create an account?",
				Answer:   "Download the Nexus app, click Sign Up, enter your email and create a password. Verify your email and you're ready to go!",
			},
		},
	},
	{
		Title: "Swapping Items",
		Items: []Item{
			{
				Question: "How do I list an item for swap?",
				Answer:   "Go to Swap section, click Create New Swap, add photos, title, description of what you have and what you're looking for.",
			},
			{
				Question: "Is swapping safe?",
				Answer:   "Yes! Meet in public places, verify profiles, inspect items before swapping, and trust your instincts.",
			},
		},
	},
	{
		Title: "Lost & Found",
		Items: []Item{
			{
				Question: "How do I report a lost item?",
				Answer:   "Go to Lost & Found, click Report Lost Item, provide details like when/where you lost it, and add a photo if possible.",
			},
			{
				Question: "How can I claim a found item?",
				Answer:   "If you see your lost item listed, click Claim This Item and verify ownership by describing specific details.",
			},
		},
	},
}

// Sections returns a copy of the whole FAQ.
func Sections() []Section {
	return Filter("")
}

// Filter keeps items whose question or answer contains query, ignoring
// case. Sections left without items are dropped.
func Filter(query string) []Section {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]Section, 0, len(faq))
	for _, section := range faq {
		var items []Item
		for _, item := range section.Items {
			if needle == "" ||
				strings.Contains(strings.ToLower(item.Question), needle) ||
				strings.Contains(strings.ToLower(item.Answer), needle) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out = append(out, Section{Title: section.Title, Items: items})
		}
	}
	return out
}
