package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type careGuide struct {
	title string
	tips  []string
}

var careGuides = []careGuide{
	{"🌱 Getting Started", []string{
		"Start with easy-to-grow plants like herbs (basil, mint, cilantro)",
		"Choose the right containers with proper drainage holes",
		"Use quality potting soil, not garden soil for containers",
		"Place plants where they'll get appropriate sunlight",
		"Start small and expand your garden gradually",
	}},
	{"💧 Watering Wisdom", []string{
		"Water when the top inch of soil feels dry",
		"Water deeply but less frequently to encourage deep roots",
		"Water early morning or evening to reduce evaporation",
		"Check soil moisture with your finger, not just surface appearance",
		"Use drip trays to prevent water damage and retain moisture",
	}},
	{"☀️ Light Requirements", []string{
		"Full sun plants need 6+ hours of direct sunlight daily",
		"Partial sun plants thrive with 3-6 hours of sunlight",
		"Shade plants can grow with less than 3 hours of direct sun",
		"Rotate plants weekly for even growth",
		"Use reflective materials to maximize available light",
	}},
	{"🥗 Nutrition & Feeding", []string{
		"Feed container plants every 2-4 weeks with balanced fertilizer",
		"Organic compost improves soil health and provides nutrients",
		"Yellow leaves often indicate nitrogen deficiency",
		"Don't over-fertilize, it can burn roots and reduce fruit production",
		"Use slow-release fertilizers for consistent nutrition",
	}},
	{"🐛 Pest Protection", []string{
		"Inspect plants weekly for early pest detection",
		"Remove affected leaves immediately to prevent spread",
		"Use neem oil spray for natural pest control",
		"Encourage beneficial insects with companion planting",
		"Keep plants healthy, strong plants resist pests better",
	}},
	{"🌿 Seasonal Care", []string{
		"Spring: Start new plants, increase watering as growth resumes",
		"Summer: Provide shade during extreme heat, water more frequently",
		"Monsoon: Ensure good drainage, watch for fungal issues",
		"Winter: Reduce watering, protect from cold winds",
		"Year-round: Prune dead/diseased parts regularly",
	}},
	{"🏠 Container Gardening", []string{
		"Choose containers 2-3 times wider than the plant's root ball",
		"Ensure drainage holes and use pot feet to improve airflow",
		"Group plants with similar water and light needs",
		"Use lightweight containers for mobility",
		"Consider self-watering containers for consistent moisture",
	}},
	{"📏 Space Optimization", []string{
		"Use vertical growing systems for small spaces",
		"Practice succession planting for continuous harvest",
		"Companion plant to maximize space and benefits",
		"Choose dwarf or compact varieties for containers",
		"Use hanging baskets for trailing plants",
	}},
}

type guidesModel struct {
	width  int
	height int
	cursor int
}

func newGuidesModel() guidesModel {
	return guidesModel{}
}

func (g *guidesModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g guidesModel) update(msg tea.Msg) (guidesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
			if g.cursor < len(careGuides)-1 {
				g.cursor++
			}
		}
	}
	return g, nil
}

func (g guidesModel) view() string {
	w := g.width - 4
	menuWidth := 26

	var menu []string
	menu = append(menu, titleStyle.Render("Care Guides"), "")
	for i, c := range careGuides {
		menu = append(menu, cursorRow(i == g.cursor, c.title))
	}

	c := careGuides[g.cursor]
	tips := []string{titleStyle.Render(c.title), ""}
	tips = append(tips, bullets(c.tips, normalItemStyle.Render)...)
	tips = append(tips, "", mutedStyle.Render("  ↑/↓: browse  2: analyze a space"))

	left := lipgloss.NewStyle().Width(menuWidth).Render(strings.Join(menu, "\n"))
	right := lipgloss.NewStyle().Width(max(w-menuWidth-8, 20)).Render(strings.Join(tips, "\n"))

	return panelStyle.Width(w).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
}
