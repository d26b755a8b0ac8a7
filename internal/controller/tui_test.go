package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

func TestTUI_DisplayEvents(t *testing.T) {
	var buf bytes.Buffer

	tui := NewTUI(&buf)
	id := m.NewNamedFixtureItemID("Tests.Root", "Shop.Order", "first")

	require.NoError(t, tui.Start(context.Background(), WithCommandMode()))
	require.NoError(t, tui.DisplayEvents(context.Background(), "set", []m.Event{
		m.MemberChangedFailedEvent{ID: id, Reason: "member \"Nope\" not found"},
	}, errors.New("boom")))

	output := buf.String()
	assert.Contains(t, output, "rejected")
	assert.Contains(t, output, "set failed [error]: boom")
	assert.Equal(t, ModeCommand, tui.config.Mode())
}

func TestTUI_DisplayConfiguration_PrintsWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer

	tui := NewTUI(&buf)
	id := m.NewNamedFixtureItemID("Tests.Root", "Shop.Order", "first")
	item := m.EmptyConfigurationItem(id).
		WithMember(m.UniqueMemberConfiguration{Name: "Id", Origin: m.SystemDefaultSource()})

	require.NoError(t, tui.Start(context.Background(), WithBrowseMode()))
	require.NoError(t, tui.DisplayConfiguration(context.Background(), item))

	assert.Contains(t, buf.String(), "Tests.Root:Shop.Order#first")
	assert.Contains(t, buf.String(), "unique")
	assert.Equal(t, ModeBrowse, tui.config.Mode())
}

func TestTUI_DisplayHistory_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTUI(&buf).DisplayHistory(context.Background(), "Tests.Root", nil))
	assert.Contains(t, buf.String(), "No events recorded")
}

func TestPagerModel_NeedsPagination(t *testing.T) {
	short := newPagerModel("root", "a\nb\nc\n")
	long := newPagerModel("root", strings.Repeat("line\n", 100))

	assert.False(t, short.needsPagination(), "unknown terminal size never paginates")
	assert.False(t, short.resize(80, 24).needsPagination())
	assert.True(t, long.resize(80, 24).needsPagination())
}

func TestPagerModel_Update(t *testing.T) {
	model := newPagerModel("root", strings.Repeat("line\n", 100)).resize(80, 24)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	bottom := next.(pagerModel)
	assert.InDelta(t, 1.0, bottom.viewport.ScrollPercent(), 0.001)

	next, _ = bottom.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, next.(pagerModel).viewport.YOffset)

	next, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.Equal(t, 50, next.(pagerModel).height)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Contains(t, model.View(), "q quit")
}
