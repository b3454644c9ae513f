// Package sports serves the static per-sport services pages.
package sports

import (
	"strings"

	"sportmarket/internal/domain"
)

// Category is one sport family with its disciplines and directory filters.
type Category struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Headline        string   `json:"headline"`
	Tagline         string   `json:"tagline"`
	Disciplines     []string `json:"disciplines"`
	TrainerFilter   string   `json:"trainerFilter"`
	InstituteFilter string   `json:"instituteFilter"`
}

var categories = []Category{
	{
		Slug:            "martial-arts",
		Title:           "Martial Arts",
		Headline:        "Unleash the Warrior Within",
		Tagline:         "Build strength, discipline, and confidence through timeless martial arts training.",
		Disciplines:     []string{"Karate", "Taekwondo", "Boxing", "Wrestling", "Fencing", "Kendo"},
		TrainerFilter:   "MartialArts",
		InstituteFilter: "Martial Arts",
	},
	{
		Slug:     "dance",
		Title:    "Dance",
		Headline: "Move with Passion and Grace",
		Tagline:  "Build rhythm, confidence, and expression through inspiring dance training.",
		Disciplines: []string{
			"Classical Dance", "Contemporary Dance", "Hip-Hop Dance", "Folk Dance",
			"Western Dance", "Latin Dance", "Fitness Dance", "Creative & Kids Dance",
		},
		TrainerFilter:   "Dance",
		InstituteFilter: "Dance",
	},
	{
		Slug:            "racket-sports",
		Title:           "Racket Sports",
		Headline:        "Master the Court",
		Tagline:         "Sharpen your focus, power, and passion with dynamic racket sports.",
		Disciplines:     []string{"Tennis", "Badminton", "Pickleball", "Soft Tennis", "Padel Tennis", "Speedminton"},
		TrainerFilter:   "Racket",
		InstituteFilter: "Racket",
	},
	{
		Slug:     "equestrian",
		Title:    "Equestrian Sports",
		Headline: "Ride with Unbreakable Courage",
		Tagline:  "Develop strength, grace, and confidence through world-class equestrian training.",
		Disciplines: []string{
			"Dressage", "Show Jumping", "Eventing", "Cross Country",
			"Endurance Riding", "Polo", "Horse Racing", "Para-Equestrian",
		},
		TrainerFilter:   "Equestrian",
		InstituteFilter: "Equestrian",
	},
}

// All returns every category in display order.
func All() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Disciplines = append([]string(nil), c.Disciplines...)
		out[i] = c
	}
	return out
}

// Get returns the category with the given slug.
func Get(slug string) (Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range All() {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, domain.ErrNotFound
}
