package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/magazine/internal/core/magazine"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case toastsChangedMsg:
		m.layout()
		return m, m.signal.Wait()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case postsLoadedMsg:
		return m.handlePostsLoaded(msg)

	case userLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, magazine.ErrUnauthorized) {
				log.Debug().Err(msg.err).Msg("failed to load current user")
			}
			m.me = nil
		} else {
			u := msg.user
			m.me = &u
		}
		m.refreshContent()
		return m, nil

	case likeToggledMsg:
		return m.handleLikeToggled(msg)

	case postDeletedMsg:
		return m.handlePostDeleted(msg)

	case commentPostedMsg:
		return m.handleCommentPosted(msg)
	}

	if m.mode == modeCompose {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeCompose:
		return m.handleComposeKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.signal.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.posts)-1 {
			m.selected++
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadPosts(), m.loadUser())

	case key.Matches(msg, m.keys.Like):
		post, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		if m.me == nil {
			m.toasts.Info("Login to like")
			return m, nil
		}
		return m, m.toggleLike(post.ID)

	case key.Matches(msg, m.keys.Delete):
		post, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		if !post.OwnedBy(m.me) {
			m.toasts.Error("Cannot delete. Are you the owner?")
			return m, nil
		}
		m.mode, m.pendingID = modeConfirmDelete, post.ID
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		post, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		if m.me == nil {
			m.toasts.Info("Login first")
			return m, nil
		}
		m.mode, m.pendingID = modeCompose, post.ID
		m.input.Reset()
		cmd := m.input.Focus()
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.DismissToast):
		m.toasts.DismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.ClearToasts):
		m.toasts.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.pendingID
		m.resetMode()
		return m, m.deletePost(id)

	case key.Matches(msg, m.keys.Cancel):
		m.resetMode()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		m.signal.Stop()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		body := strings.TrimSpace(m.input.Value())
		if body == "" {
			return m, nil
		}
		id := m.pendingID
		m.resetMode()
		return m, m.postComment(id, body)

	case key.Matches(msg, m.keys.Back):
		m.resetMode()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		m.signal.Stop()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resetMode returns to browsing and drops any pending action.
func (m *Model) resetMode() {
	m.mode, m.pendingID = modeBrowse, 0
	m.input.Blur()
	m.input.Reset()
	m.layout()
}

func (m Model) handlePostsLoaded(msg postsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("failed to load posts")
		m.toasts.Error("Failed to load posts: " + msg.err.Error())
		return m, nil
	}

	m.posts = msg.posts
	if m.selected >= len(m.posts) {
		m.selected = max(len(m.posts)-1, 0)
	}
	m.refreshContent()
	return m, nil
}

func (m Model) handleLikeToggled(msg likeToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, magazine.ErrUnauthorized) {
			m.toasts.Info("Login to like")
		} else {
			m.toasts.Error("Failed to like: " + msg.err.Error())
		}
		return m, nil
	}

	liked := msg.status == magazine.Liked
	for i := range m.posts {
		if m.posts[i].ID != msg.id {
			continue
		}
		switch {
		case liked && !m.liked[msg.id]:
			m.posts[i].LikesCount++
		case !liked && m.liked[msg.id]:
			m.posts[i].LikesCount = max(m.posts[i].LikesCount-1, 0)
		}
	}
	m.liked[msg.id] = liked

	m.refreshContent()
	return m, nil
}

func (m Model) handlePostDeleted(msg postDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Int64("post_id", msg.id).Msg("delete failed")
		m.toasts.Error("Cannot delete. Are you the owner?")
		return m, nil
	}

	for i, p := range m.posts {
		if p.ID == msg.id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			break
		}
	}
	if m.selected >= len(m.posts) {
		m.selected = max(len(m.posts)-1, 0)
	}

	m.toasts.Success("Post deleted")
	m.refreshContent()
	return m, nil
}

func (m Model) handleCommentPosted(msg commentPostedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error().Err(msg.err).Int64("post_id", msg.postID).Msg("comment failed")
		if errors.Is(msg.err, magazine.ErrUnauthorized) {
			m.toasts.Info("Login first")
		} else {
			m.toasts.Error("Error posting comment")
		}
		return m, nil
	}

	for i := range m.posts {
		if m.posts[i].ID == msg.postID {
			m.posts[i].Comments = append(m.posts[i].Comments, msg.comment)
			break
		}
	}

	m.toasts.Success("Commented")
	m.refreshContent()
	return m, nil
}
