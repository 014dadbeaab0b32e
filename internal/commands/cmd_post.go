package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/magazine/internal/client"
	"github.com/colonyops/magazine/internal/core/logging"
	"github.com/colonyops/magazine/internal/core/magazine"
	"github.com/colonyops/magazine/internal/core/toast"
	"github.com/colonyops/magazine/internal/core/validate"
	"github.com/colonyops/magazine/internal/tui"
)

const defaultFeedWidth = 80

type PostCmd struct {
	flags *Flags
	app   *client.App

	title string
	body  string
	image string
	yes   bool

	// interactive reports whether destructive actions may be confirmed
	// with a prompt.
	interactive func() bool
	confirm     func(title string) (bool, error)
}

// NewPostCmd creates the feed, post, like, comment and delete commands.
func NewPostCmd(flags *Flags, app *client.App) *PostCmd {
	return &PostCmd{
		flags: flags,
		app:   app,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		confirm: confirmPrompt,
	}
}

// Register adds the post commands to the application.
func (cmd *PostCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:   "feed",
			Usage:  "Print the latest posts",
			Action: cmd.runFeed,
		},
		&cli.Command{
			Name:      "post",
			Usage:     "Create a post",
			UsageText: "magazine post --title text [--body markdown] [--image path]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "title",
					Aliases:     []string{"t"},
					Usage:       "post title",
					Destination: &cmd.title,
				},
				&cli.StringFlag{
					Name:        "body",
					Aliases:     []string{"b"},
					Usage:       "post body (markdown)",
					Destination: &cmd.body,
				},
				&cli.StringFlag{
					Name:        "image",
					Aliases:     []string{"i"},
					Usage:       "path to an image to attach",
					Destination: &cmd.image,
				},
			},
			Action: cmd.runPost,
		},
		&cli.Command{
			Name:      "like",
			Usage:     "Like or unlike a post",
			UsageText: "magazine like <post-id>",
			Action:    cmd.runLike,
		},
		&cli.Command{
			Name:      "comment",
			Usage:     "Comment on a post",
			UsageText: "magazine comment <post-id> <text...>",
			Action:    cmd.runComment,
		},
		&cli.Command{
			Name:      "delete",
			Usage:     "Delete one of your posts",
			UsageText: "magazine delete [--yes] <post-id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "yes",
					Aliases:     []string{"y"},
					Usage:       "skip the confirmation prompt",
					Destination: &cmd.yes,
				},
			},
			Action: cmd.runDelete,
		},
	)

	return app
}

// Feed prints the feed. Exported for use as the default command when stdout
// is not a terminal.
func (cmd *PostCmd) Feed(ctx context.Context, c *cli.Command) error {
	return cmd.runFeed(ctx, c)
}

func (cmd *PostCmd) runFeed(ctx context.Context, c *cli.Command) error {
	posts, err := cmd.app.API.ListPosts(ctx)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("failed to load posts")
		toast.FromContext(ctx).Error("Failed to load posts: " + errorDetail(err))
		return errReported
	}

	w := c.Root().Writer
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts yet.")
		return err
	}

	var (
		width = feedWidth()
		md    = tui.NewMarkdownRenderer(cmd.app.Config.TUI.MarkdownStyle)
		me    = cmd.cachedUser()
	)
	for _, p := range posts {
		out := tui.RenderPost(tui.PostView{
			Post:     p,
			Body:     md.Render(p.Body, width-4),
			Comments: md.RenderComments(p.Comments, width-8),
			Owned:    p.OwnedBy(me),
		})
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *PostCmd) runPost(ctx context.Context, _ *cli.Command) error {
	toasts := toast.FromContext(ctx)

	if !cmd.app.Credentials.LoggedIn() {
		toasts.Info("Please login to create a post.")
		return errReported
	}
	if err := validate.PostTitle(cmd.title); err != nil {
		toasts.Error("Please provide a title for the post.")
		return errReported
	}

	post, err := cmd.app.API.CreatePost(ctx, magazine.CreatePostRequest{
		Title:     strings.TrimSpace(cmd.title),
		Body:      cmd.body,
		ImagePath: cmd.image,
	})
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("post failed")
		toasts.Error("Failed to post: " + errorDetail(err))
		return errReported
	}

	log.Info().Ctx(logging.WithPostID(ctx, post.ID)).Msg("post created")
	toasts.Success("Posted")
	return nil
}

func (cmd *PostCmd) runLike(ctx context.Context, c *cli.Command) error {
	toasts := toast.FromContext(ctx)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	if !cmd.app.Credentials.LoggedIn() {
		toasts.Info("Login to like")
		return errReported
	}

	status, err := cmd.app.API.ToggleLike(ctx, id)
	switch {
	case errors.Is(err, magazine.ErrUnauthorized):
		toasts.Info("Login to like")
		return errReported
	case err != nil:
		toasts.Error("Failed to like: " + errorDetail(err))
		return errReported
	}

	if status == magazine.Liked {
		toasts.Success("Liked")
	} else {
		toasts.Info("Unliked")
	}
	return nil
}

func (cmd *PostCmd) runComment(ctx context.Context, c *cli.Command) error {
	toasts := toast.FromContext(ctx)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Args().Tail(), " "))
	if text == "" {
		return fmt.Errorf("missing comment text")
	}
	if !cmd.app.Credentials.LoggedIn() {
		toasts.Info("Login first")
		return errReported
	}

	if _, err := cmd.app.API.Comment(ctx, id, magazine.CommentRequest{Body: text}); err != nil {
		log.Error().Ctx(logging.WithPostID(ctx, id)).Err(err).Msg("comment failed")
		toasts.Error("Error posting comment")
		return errReported
	}

	toasts.Success("Commented")
	return nil
}

func (cmd *PostCmd) runDelete(ctx context.Context, c *cli.Command) error {
	toasts := toast.FromContext(ctx)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	if !cmd.yes {
		if !cmd.interactive() {
			return fmt.Errorf("--yes is required when stdin is not a terminal")
		}
		ok, err := cmd.confirm("Delete this post?")
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !ok {
			log.Debug().Ctx(logging.WithPostID(ctx, id)).Msg("delete cancelled")
			return nil
		}
	}

	if err := cmd.app.API.DeletePost(ctx, id); err != nil {
		log.Warn().Ctx(logging.WithPostID(ctx, id)).Err(err).Msg("delete failed")
		toasts.Error("Cannot delete. Are you the owner?")
		return errReported
	}

	toasts.Success("Post deleted")
	return nil
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// cachedUser returns the user stored at login, if any, without a request.
func (cmd *PostCmd) cachedUser() *magazine.User {
	creds, err := cmd.app.Credentials.Load()
	if err != nil {
		return nil
	}
	return creds.User
}

func feedWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultFeedWidth
}
