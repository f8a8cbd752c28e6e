package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memoradmin/internal/client/services"
)

// Token reads a bearer token without echo and stores it. The next request
// uses it.
func (a *App) Token(ctx context.Context) error {
	token, err := GetSecret(a.out, "Paste bearer token: ")
	if err != nil {
		return err
	}
	info, err := a.sessions.Login(ctx, token)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("signed in as %s", displaySubject(info)))
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	info, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	a.println(displaySubject(info))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.println("signed out")
	return nil
}

func displaySubject(info *services.SessionInfo) string {
	subject := info.Subject
	if subject == "" {
		subject = "(unknown subject)"
	}
	switch {
	case info.ExpiresAt.IsZero():
		return subject
	case info.Expired:
		return fmt.Sprintf("%s, token expired at %s", subject, info.ExpiresAt.Local().Format(time.DateTime))
	default:
		return fmt.Sprintf("%s, token valid until %s", subject, info.ExpiresAt.Local().Format(time.DateTime))
	}
}
