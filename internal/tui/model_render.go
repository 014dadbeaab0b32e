package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.spinner.View() + " Loading..."
	}

	sections := []string{m.headerView(), m.bodyView()}
	if toasts := m.toastView.View(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	who := mutedStyle.Render("not logged in")
	if m.me != nil {
		who = mutedStyle.Render("@" + m.me.Username)
	}

	title := headerStyle.Render("magazine")
	if m.loading {
		title += m.spinner.View()
	}
	return title + " " + who
}

func (m Model) bodyView() string {
	if len(m.posts) == 0 {
		msg := "No posts yet."
		if m.loading {
			msg = "Loading posts..."
		}
		return lipgloss.NewStyle().
			Height(m.viewport.Height).
			Padding(0, 1).
			Render(mutedStyle.Render(msg))
	}
	return m.viewport.View()
}

// footerView shows the key help, or the prompt for a pending action.
func (m Model) footerView() string {
	switch m.mode {
	case modeConfirmDelete:
		prompt := promptStyle.Render("Delete this post?")
		return prompt + " " + m.help.ShortHelpView(confirmHelp{m.keys}.ShortHelp())
	case modeCompose:
		return m.input.View() + "\n" + m.help.ShortHelpView(composeHelp{m.keys}.ShortHelp())
	}
	return m.help.View(m.keys)
}

// layout sizes the viewport to the space left after the header, toast
// stack and help line.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	reserved := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView()) + m.toastView.Height()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-reserved, 1)
	m.ensureSelectedVisible()
}

// refreshContent re-renders every post into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	width := max(m.width-4, minWrapWidth)
	m.postLines = make([]int, 0, len(m.posts))

	var b strings.Builder
	line := 0
	for i, p := range m.posts {
		rendered := RenderPost(PostView{
			Post:     p,
			Body:     m.markdown.Render(p.Body, width),
			Comments: m.markdown.RenderComments(p.Comments, width-4),
			Selected: i == m.selected,
			Liked:    m.liked[p.ID],
			Owned:    p.OwnedBy(m.me),
		})
		m.postLines = append(m.postLines, line)
		line += lipgloss.Height(rendered)

		b.WriteString(rendered)
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.layout()
}

func (m *Model) ensureSelectedVisible() {
	if m.selected >= len(m.postLines) {
		return
	}

	start := m.postLines[m.selected]
	end := start
	if m.selected+1 < len(m.postLines) {
		end = m.postLines[m.selected+1] - 1
	}

	switch {
	case start < m.viewport.YOffset:
		m.viewport.SetYOffset(start)
	case end >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(max(end-m.viewport.Height+1, start))
	}
}
