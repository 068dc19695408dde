package content

import (
	"sort"
	"strings"
)

// PlaceholderImage is used for projects without an image.
const PlaceholderImage = "/assets/images/project-placeholder.svg"

type SkillLevel struct {
	Name        string
	Level       int
	Description string
	Icon        string
}

// SkillLevels renames skill percentages to display levels, per category.
func SkillLevels(b *Bundle) map[string][]SkillLevel {
	out := make(map[string][]SkillLevel, len(b.Skills))
	for category, skills := range b.Skills {
		levels := make([]SkillLevel, len(skills))
		for i, s := range skills {
			levels[i] = SkillLevel{Name: s.Name, Level: s.Percentage, Description: s.Description, Icon: s.Icon}
		}
		out[category] = levels
	}
	return out
}

// Categories returns the sorted keys of a category map.
func Categories[T any](m map[string][]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type Link struct {
	Kind  string
	Label string
	URL   string
}

type ProjectCard struct {
	ID          int64
	Title       string
	Description string
	Image       string
	Category    string
	Tags        []string
	Links       []Link
	Featured    bool
	Year        int
	Status      string
}

var linkLabels = map[string]string{
	"demo":     "View Demo",
	"github":   "GitHub",
	"download": "Download",
	"store":    "Store",
}

// ProjectCards flattens every category into display cards: featured first,
// then newest first. Links that are empty or "#" are dropped.
func ProjectCards(b *Bundle) []ProjectCard {
	var cards []ProjectCard
	for _, category := range Categories(b.Projects) {
		for _, p := range b.Projects[category] {
			cat := p.Category
			if cat == "" {
				cat = category
			}
			image := p.Image
			if image == "" {
				image = PlaceholderImage
			}
			cards = append(cards, ProjectCard{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				Image:       image,
				Category:    cat,
				Tags:        p.Technologies,
				Links:       projectLinks(p),
				Featured:    p.Featured,
				Year:        p.Year,
				Status:      p.Status,
			})
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Featured != cards[j].Featured {
			return cards[i].Featured
		}
		return cards[i].Year > cards[j].Year
	})
	return cards
}

func projectLinks(p Project) []Link {
	var links []Link
	for _, l := range []struct{ kind, url string }{
		{"demo", p.DemoURL},
		{"github", p.GithubURL},
		{"download", p.DownloadURL},
		{"store", p.StoreURL},
	} {
		if l.url == "" || l.url == "#" {
			continue
		}
		links = append(links, Link{Kind: l.kind, Label: linkLabels[l.kind], URL: l.url})
	}
	return links
}

var categoryTitles = map[string]string{
	"unity":     "Game Development",
	"vr":        "VR/AR Development",
	"modeling":  "3D Modeling",
	"technical": "Technical Skills",
}

// CategoryTitle returns the display heading for a category key.
func CategoryTitle(key string) string {
	if t, ok := categoryTitles[key]; ok {
		return t
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
