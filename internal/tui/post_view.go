package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/magazine/internal/core/config"
	"github.com/colonyops/magazine/internal/core/magazine"
)

const minWrapWidth = 20

// MarkdownRenderer renders post bodies with glamour, rebuilding the
// underlying renderer only when the wrap width changes.
type MarkdownRenderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for one of the config.Markdown*
// styles. Unknown styles behave like config.MarkdownAuto.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: style}
}

// Render returns the body rendered at width. Rendering failures fall back
// to the raw text.
func (r *MarkdownRenderer) Render(body string, width int) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	width = max(width, minWrapWidth)

	if r.tr == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(r.styleOption(), glamour.WithWordWrap(width))
		if err != nil {
			log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
			return body
		}
		r.tr, r.width = tr, width
	}

	out, err := r.tr.Render(body)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return body
	}
	return strings.Trim(out, "\n")
}

func (r *MarkdownRenderer) styleOption() glamour.TermRendererOption {
	switch r.style {
	case config.MarkdownDark, config.MarkdownLight, config.MarkdownNoTTY:
		return glamour.WithStandardStyle(r.style)
	default:
		return glamour.WithAutoStyle()
	}
}

// RenderComments renders each comment body at width, in order.
func (r *MarkdownRenderer) RenderComments(comments []magazine.Comment, width int) []string {
	out := make([]string, len(comments))
	for i, c := range comments {
		out[i] = r.Render(c.Body, width)
	}
	return out
}

// PostView holds the per-post presentation state.
type PostView struct {
	Post magazine.Post
	Body string // pre-rendered body
	// Comments holds pre-rendered comment bodies, index-aligned with
	// Post.Comments. Missing entries fall back to the raw body.
	Comments []string
	Selected bool
	Liked    bool
	Owned    bool
}

// RenderPost renders a feed entry: title, byline, body, counters and
// comments.
func RenderPost(v PostView) string {
	var b strings.Builder

	b.WriteString(postTitleStyle.Render(v.Post.Title))
	b.WriteString("\n")

	meta := fmt.Sprintf("#%d %s %s", v.Post.ID, iconDot, v.Post.Author.Username)
	if !v.Post.CreatedAt.IsZero() {
		meta += " " + iconDot + " " + v.Post.CreatedAt.Local().Format("Jan 2 15:04")
	}
	if v.Owned {
		meta += " " + iconDot + " yours"
	}
	b.WriteString(postMetaStyle.Render(meta))

	if v.Body != "" {
		b.WriteString("\n")
		b.WriteString(v.Body)
	}

	heart := mutedStyle.Render(iconHeartEmpty)
	if v.Liked {
		heart = likedStyle.Render(iconHeart)
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d  %s", heart, v.Post.LikesCount,
		mutedStyle.Render(fmt.Sprintf("%d comments", len(v.Post.Comments)))))

	for i, c := range v.Post.Comments {
		body := c.Body
		if i < len(v.Comments) && v.Comments[i] != "" {
			body = v.Comments[i]
		}
		b.WriteString("\n")
		b.WriteString(renderComment(c, body))
	}

	style := postStyle
	if v.Selected {
		style = postSelectedStyle
	}
	return style.Render(b.String())
}

func renderComment(c magazine.Comment, body string) string {
	meta := c.Author.Username
	if !c.CreatedAt.IsZero() {
		meta += " " + iconDot + " " + c.CreatedAt.Local().Format("Jan 2 15:04")
	}

	out := postMetaStyle.Render(meta)
	if strings.TrimSpace(body) != "" {
		out += "\n" + body
	}
	return commentStyle.Render(out)
}
