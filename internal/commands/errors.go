package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/magazine/internal/core/magazine"
)

// errReported ends a command whose failure was already shown as a toast.
var errReported = cli.Exit("", 1)

// errorDetail extracts the message worth showing to the user: the backend's
// detail when there is one, otherwise the error text.
func errorDetail(err error) string {
	var apiErr *magazine.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

func parsePostID(c *cli.Command) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing post id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}
