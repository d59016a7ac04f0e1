package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/open-cli-collective/bbfmt/api"
)

// CheckRemote verifies that the server behind client is up and accepts
// its API key.
func CheckRemote(ctx context.Context, client *api.Client) error {
	if err := client.Health(ctx); err != nil {
		return describeRemoteError(err)
	}
	if err := client.Verify(ctx); err != nil {
		return describeRemoteError(err)
	}
	return nil
}

func describeRemoteError(err error) error {
	var apiErr *api.ErrorResponse
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return errors.New("authentication failed - check your API key")
	case http.StatusForbidden:
		return errors.New("access denied - check your permissions")
	default:
		return fmt.Errorf("unexpected status code: %d", apiErr.StatusCode)
	}
}
