package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/folio3d/internal/content"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00d4ff")).Bold(true)
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0aaff"))
	keyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// Section is a top-level entry of the portfolio menu.
type Section string

const (
	SectionAbout      Section = "about"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
	SectionExperience Section = "experience"
	SectionContact    Section = "contact"
	SectionLive       Section = "live scene"
)

var sections = []Section{SectionAbout, SectionSkills, SectionProjects, SectionExperience, SectionContact, SectionLive}

var sectionInfo = map[Section]string{
	SectionAbout:      "who and what",
	SectionSkills:     "levels by discipline",
	SectionProjects:   "featured work first",
	SectionExperience: "roles and education",
	SectionContact:    "where to reach out",
	SectionLive:       "the particle scene",
}

// Entry is one browsable item of a section.
type Entry struct {
	Title  string
	Note   string
	Detail []string
}

const (
	stateMenu = iota
	stateSection
	stateDetail
	stateLive
)

// LaunchFunc builds the live view on demand.
type LaunchFunc func() (Model, error)

type model struct {
	state, cursor int
	entryCursor   int
	section       Section
	entries       []Entry
	bundle        *content.Bundle
	launch        LaunchFunc
	launched      bool
	err           error
	width, height int
	liveModel     Model
}

// NewInteractiveApp returns the portfolio browser. A nil launch hides the
// live scene entry.
func NewInteractiveApp(bundle *content.Bundle, launch LaunchFunc) *model {
	if bundle == nil {
		bundle = content.Fallback()
	}
	return &model{state: stateMenu, bundle: bundle, launch: launch, width: width, height: height}
}

func (m model) menu() []Section {
	if m.launch == nil {
		return sections[:len(sections)-1]
	}
	return sections
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.launched {
			m.liveModel.resize(msg.Width, msg.Height)
		}
		return m, nil
	case ContentMsg:
		if msg.Bundle != nil {
			m.bundle = msg.Bundle
			if m.state != stateMenu && m.state != stateLive {
				m.entries = SectionEntries(m.bundle, m.section)
				m.state, m.entryCursor = stateSection, 0
			}
		}
	}
	if m.launched {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSection:
		return m.sectionKey(msg)
	case stateDetail:
		switch msg.String() {
		case "q", "esc", "enter", "backspace":
			m.state = stateSection
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case stateLive:
		if msg.String() == "esc" {
			m.liveModel.running = false
			m.state = stateMenu
			return m, nil
		}
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	items := m.menu()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "l":
		if m.launch != nil {
			return m.startLive()
		}
	case "enter", " ":
		m.section = items[m.cursor]
		if m.section == SectionLive {
			return m.startLive()
		}
		m.entries = SectionEntries(m.bundle, m.section)
		m.state, m.entryCursor = stateSection, 0
	}
	return m, nil
}

func (m model) sectionKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.state = stateMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.entryCursor > 0 {
			m.entryCursor--
		}
	case "down", "j":
		if m.entryCursor < len(m.entries)-1 {
			m.entryCursor++
		}
	case "enter", " ":
		if len(m.entries) > 0 {
			m.state = stateDetail
		}
	}
	return m, nil
}

func (m model) startLive() (model, tea.Cmd) {
	m.state = stateLive
	if m.launched {
		m.liveModel.running = true
		return m, nil
	}
	live, err := m.launch()
	if err != nil {
		m.err = err
		m.state = stateMenu
		return m, nil
	}
	live.bundle = m.bundle
	m.liveModel, m.launched, m.err = live, true, nil
	m.liveModel.resize(m.width, m.height)
	return m, m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSection:
		return m.viewSection()
	case stateDetail:
		return m.viewDetail()
	case stateLive:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyHint.Render(pairs[i]) + dimmer.Render(" "+pairs[i+1]+"  "))
	}
	return "\n    " + b.String() + "\n"
}

func (m model) viewMenu() string {
	var b strings.Builder
	title := m.bundle.About.Title
	if title == "" {
		title = "folio3d"
	}
	b.WriteString("\n\n    " + GradientText(strings.ToUpper(title), ThemeDark.Primary, ThemeDark.Secondary) + "\n")
	if sub := m.bundle.About.Subtitle; sub != "" {
		b.WriteString("    " + dim.Render(sub) + "\n")
	}
	b.WriteString("    " + dim.Render("─────────────────────────") + "\n\n")
	for i, sec := range m.menu() {
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", cyan.Render("▸"), white.Render(fmt.Sprintf("%-12s", sec)), magenta.Render(sectionInfo[sec]))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", dim.Render(fmt.Sprintf("  %-12s", sec)), dimmer.Render(sectionInfo[sec]))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + magenta.Render("live scene unavailable: "+m.err.Error()) + "\n")
	}
	return b.String() + hints("j/k", "navigate", "enter", "open", "l", "live", "q", "quit")
}

func (m model) viewSection() string {
	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Render(strings.ToUpper(string(m.section))) + "\n    " + dim.Render(sectionInfo[m.section]) + "\n    " + dim.Render("─────────────────────────") + "\n\n")
	if len(m.entries) == 0 {
		b.WriteString("    " + dimmer.Render("(nothing here yet)") + "\n")
	}
	for i, e := range m.entries {
		if i == m.entryCursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", cyan.Render("▸"), white.Render(fmt.Sprintf("%-28.28s", e.Title)), magenta.Render(e.Note))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", dim.Render(fmt.Sprintf("  %-28.28s", e.Title)), dimmer.Render(e.Note))
		}
	}
	return b.String() + hints("j/k", "select", "enter", "details", "esc", "back")
}

func (m model) viewDetail() string {
	e := m.entries[m.entryCursor]
	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Render(e.Title) + "\n")
	if e.Note != "" {
		b.WriteString("    " + magenta.Render(e.Note) + "\n")
	}
	b.WriteString("    " + dim.Render("─────────────────────────") + "\n\n")
	for _, line := range e.Detail {
		b.WriteString("    " + line + "\n")
	}
	return b.String() + hints("esc", "back")
}

// SectionEntries flattens a section of the bundle into browsable entries.
func SectionEntries(b *content.Bundle, sec Section) []Entry {
	switch sec {
	case SectionAbout:
		return aboutEntries(b.About)
	case SectionSkills:
		return skillEntries(b)
	case SectionProjects:
		return projectEntries(b)
	case SectionExperience:
		return experienceEntries(b)
	case SectionContact:
		return contactEntries(b.Contact)
	}
	return nil
}

func aboutEntries(a content.About) []Entry {
	var detail []string
	for _, s := range []string{a.Greeting, a.Description, a.HeroDescription} {
		if s != "" {
			detail = append(detail, s)
		}
	}
	if a.ResumeURL != "" {
		detail = append(detail, "", "Resume: "+a.ResumeURL)
	}
	return []Entry{{Title: a.Title, Note: a.Subtitle, Detail: detail}}
}

func skillEntries(b *content.Bundle) []Entry {
	styles := NewStyles(ThemeDark)
	levels := content.SkillLevels(b)
	var entries []Entry
	for _, cat := range content.Categories(b.Skills) {
		for _, l := range levels[cat] {
			detail := []string{fmt.Sprintf("%s %d%%", styles.ProgressBar(float64(l.Level)/100, 20), l.Level)}
			if l.Description != "" {
				detail = append(detail, "", l.Description)
			}
			entries = append(entries, Entry{Title: l.Name, Note: content.CategoryTitle(cat), Detail: detail})
		}
	}
	return entries
}

func projectEntries(b *content.Bundle) []Entry {
	var entries []Entry
	for _, c := range content.ProjectCards(b) {
		note := content.CategoryTitle(c.Category)
		if c.Year > 0 {
			note = fmt.Sprintf("%s · %d", note, c.Year)
		}
		title := c.Title
		if c.Featured {
			title = "★ " + title
		}
		var detail []string
		if c.Description != "" {
			detail = append(detail, c.Description, "")
		}
		if c.Status != "" {
			detail = append(detail, "Status: "+c.Status)
		}
		if len(c.Tags) > 0 {
			detail = append(detail, "Tech:   "+strings.Join(c.Tags, ", "))
		}
		for _, l := range c.Links {
			detail = append(detail, fmt.Sprintf("%-8s %s", l.Label+":", l.URL))
		}
		entries = append(entries, Entry{Title: title, Note: note, Detail: detail})
	}
	return entries
}

func experienceEntries(b *content.Bundle) []Entry {
	var entries []Entry
	for _, typ := range content.Categories(b.Experience) {
		for _, e := range b.Experience[typ] {
			end := e.EndDate
			if e.Current || end == "" {
				end = "Present"
			}
			detail := []string{fmt.Sprintf("%s – %s", e.StartDate, end)}
			if e.Location != "" {
				detail = append(detail, e.Location)
			}
			if e.Description != "" {
				detail = append(detail, "", e.Description)
			}
			if len(e.Achievements) > 0 {
				detail = append(detail, "")
				for _, a := range e.Achievements {
					detail = append(detail, "• "+a)
				}
			}
			if len(e.Technologies) > 0 {
				detail = append(detail, "", "Tech: "+strings.Join(e.Technologies, ", "))
			}
			entries = append(entries, Entry{Title: e.Title, Note: e.Company, Detail: detail})
		}
	}
	return entries
}

func contactEntries(c content.Contact) []Entry {
	var entries []Entry
	for _, f := range []struct{ label, value string }{
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Location", c.Location},
		{"LinkedIn", c.LinkedinURL},
		{"GitHub", c.GithubURL},
		{"Twitter", c.TwitterURL},
		{"Website", c.WebsiteURL},
	} {
		if f.value == "" {
			continue
		}
		entries = append(entries, Entry{Title: f.label, Note: f.value, Detail: []string{f.value}})
	}
	return entries
}

// RunInteractive starts the browser on the alternate screen.
func RunInteractive(ctx context.Context, bundle *content.Bundle, launch LaunchFunc, ro RunOptions) error {
	return Run(ctx, NewInteractiveApp(bundle, launch), ro)
}
