package viz

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/folio3d/internal/content"
)

func key(m model, k string) model {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(model)
}

func TestSectionEntries(t *testing.T) {
	b := content.Sample()

	projects := SectionEntries(b, SectionProjects)
	require.NotEmpty(t, projects)
	cards := content.ProjectCards(b)
	assert.Len(t, projects, len(cards))
	if cards[0].Featured {
		assert.Equal(t, "★ "+cards[0].Title, projects[0].Title)
	}

	about := SectionEntries(b, SectionAbout)
	require.Len(t, about, 1)
	assert.Equal(t, b.About.Title, about[0].Title)

	total := 0
	for _, skills := range b.Skills {
		total += len(skills)
	}
	assert.Len(t, SectionEntries(b, SectionSkills), total)
	assert.Nil(t, SectionEntries(b, SectionLive))
}

func TestContactEntriesSkipEmpty(t *testing.T) {
	entries := contactEntries(content.Contact{Email: "a@b.c"})
	require.Len(t, entries, 1)
	assert.Equal(t, "Email", entries[0].Title)
}

func TestExperienceCurrentRole(t *testing.T) {
	b := &content.Bundle{Experience: map[string][]content.Experience{
		"work": {{Title: "Engineer", Company: "Studio", StartDate: "2021", Current: true}},
	}}
	entries := SectionEntries(b, SectionExperience)
	require.Len(t, entries, 1)
	assert.Equal(t, "2021 – Present", entries[0].Detail[0])
}

func TestBrowserNavigation(t *testing.T) {
	m := *NewInteractiveApp(content.Sample(), nil)
	assert.Len(t, m.menu(), len(sections)-1, "live entry hidden without a launcher")

	m = key(m, "j")
	m = key(m, "j")
	m = key(m, "enter")
	assert.Equal(t, stateSection, m.state)
	assert.Equal(t, SectionProjects, m.section)

	m = key(m, "enter")
	assert.Equal(t, stateDetail, m.state)
	assert.Contains(t, m.View(), m.entries[0].Title)

	m = key(m, "esc")
	m = key(m, "esc")
	assert.Equal(t, stateMenu, m.state)
}

func TestBrowserLaunchFailure(t *testing.T) {
	boom := errors.New("no terminal")
	m := *NewInteractiveApp(nil, func() (Model, error) { return Model{}, boom })
	m = key(m, "l")
	assert.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.View(), "no terminal")
}

func TestBrowserLaunchesLive(t *testing.T) {
	live := newLiveModel(t)
	m := *NewInteractiveApp(content.Sample(), func() (Model, error) { return live, nil })
	m = key(m, "l")
	require.Equal(t, stateLive, m.state)
	require.True(t, m.launched)

	next, _ := m.Update(TickMsg{})
	m = next.(model)
	assert.Equal(t, uint64(1), m.liveModel.surface.Stats().Frame)

	m = key(m, "esc")
	assert.Equal(t, stateMenu, m.state)
	assert.False(t, m.liveModel.running)

	m = key(m, "l")
	assert.True(t, m.liveModel.running)
}
