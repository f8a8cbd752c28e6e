package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	"github.com/dmitrijs2005/memoradmin/internal/common"
)

var errNoEntity = errors.New("no entity selected, use 'use <entity>'")

// notice renders err as a one-line user message.
func notice(err error) string {
	var (
		verr *models.ValidationError
		merr *client.MutationError
		ferr *client.FetchError
	)
	msg := err.Error()
	switch {
	case errors.As(err, &verr):
		parts := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Field, p.Message))
		}
		msg = "invalid input: " + strings.Join(parts, "; ")
	case errors.As(err, &merr):
		msg = merr.Notice()
	case errors.As(err, &ferr):
		msg = loadFailure(ferr)
	case errors.Is(err, common.ErrNoSession):
		msg = "not signed in, use 'token'"
	case errors.Is(err, common.ErrInvalidToken):
		msg = "that does not look like a token"
	}
	if errors.Is(err, client.ErrUnauthorized) {
		msg += " (session rejected, use 'token' to sign in again)"
	}
	return "! " + msg
}

func loadFailure(ferr *client.FetchError) string {
	if ferr.Message != "" {
		return fmt.Sprintf("failed to load %s: %s", ferr.Entity, ferr.Message)
	}
	return ferr.Error()
}
