package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/magazine/internal/core/magazine"
	"github.com/colonyops/magazine/internal/core/toast"
)

const commentCharLimit = 2000

// Options configures the TUI.
type Options struct {
	API    magazine.API
	Toasts *toast.Manager
	// Signal must already be subscribed to Toasts.
	Signal        *ToastSignal
	MarkdownStyle string
}

type mode int

const (
	modeBrowse mode = iota
	// modeConfirmDelete waits for y/n on pendingID.
	modeConfirmDelete
	// modeCompose edits a comment on pendingID.
	modeCompose
)

// Model is the Bubble Tea model for the feed.
type Model struct {
	ctx    context.Context
	api    magazine.API
	toasts *toast.Manager
	signal *ToastSignal

	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	viewport  viewport.Model
	markdown  *MarkdownRenderer
	toastView *ToastView
	input     textinput.Model

	posts    []magazine.Post
	liked    map[int64]bool
	me       *magazine.User
	selected int
	// postLines holds the first viewport line of each rendered post.
	postLines []int

	mode      mode
	pendingID int64

	loading  bool
	ready    bool
	quitting bool
	width    int
	height   int
}

// postsLoadedMsg is sent when the feed fetch completes.
type postsLoadedMsg struct {
	posts []magazine.Post
	err   error
}

// userLoadedMsg is sent when the current user lookup completes.
type userLoadedMsg struct {
	user magazine.User
	err  error
}

type likeToggledMsg struct {
	id     int64
	status magazine.LikeStatus
	err    error
}

type postDeletedMsg struct {
	id  int64
	err error
}

type commentPostedMsg struct {
	postID  int64
	comment magazine.Comment
	err     error
}

// New creates the feed model.
func New(ctx context.Context, opts Options) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = mutedStyle

	h := help.New()
	h.ShortSeparator = " " + iconDot + " "

	in := textinput.New()
	in.Prompt = "comment: "
	in.Placeholder = "Write a comment..."
	in.CharLimit = commentCharLimit

	return Model{
		ctx:       ctx,
		api:       opts.API,
		toasts:    opts.Toasts,
		signal:    opts.Signal,
		keys:      DefaultKeyMap(),
		help:      h,
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		markdown:  NewMarkdownRenderer(opts.MarkdownStyle),
		toastView: NewToastView(opts.Toasts),
		input:     in,
		liked:     make(map[int64]bool),
		loading:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPosts(),
		m.loadUser(),
		m.signal.Wait(),
	)
}

func (m Model) loadPosts() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.api.ListPosts(m.ctx)
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (m Model) loadUser() tea.Cmd {
	return func() tea.Msg {
		u, err := m.api.CurrentUser(m.ctx)
		return userLoadedMsg{user: u, err: err}
	}
}

func (m Model) toggleLike(id int64) tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.ToggleLike(m.ctx, id)
		return likeToggledMsg{id: id, status: status, err: err}
	}
}

func (m Model) deletePost(id int64) tea.Cmd {
	return func() tea.Msg {
		return postDeletedMsg{id: id, err: m.api.DeletePost(m.ctx, id)}
	}
}

func (m Model) postComment(id int64, body string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.api.Comment(m.ctx, id, magazine.CommentRequest{Body: body})
		return commentPostedMsg{postID: id, comment: c, err: err}
	}
}

// selectedPost returns the highlighted post, if any.
func (m Model) selectedPost() (magazine.Post, bool) {
	if m.selected < 0 || m.selected >= len(m.posts) {
		return magazine.Post{}, false
	}
	return m.posts[m.selected], true
}
