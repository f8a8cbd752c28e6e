package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/config"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	"github.com/dmitrijs2005/memoradmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/memoradmin/internal/client/services"
	"github.com/dmitrijs2005/memoradmin/internal/client/view"
	"github.com/dmitrijs2005/memoradmin/internal/logging"
)

const (
	lastEntityKey = "last_entity"
	pageSizeKey   = "page_size"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	gateway  client.Gateway
	prefs    metadata.Repository
	sessions *services.SessionService
	refs     *services.ReferenceService

	content services.ContentService
	view    *view.View

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store and wires the gateway and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	tokens := metadata.NewTokenStore(db)
	gw := client.NewHTTPGateway(c.BaseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "gateway")),
	)

	a := newApp(c, log, gw, client.NewRepositories(db).Metadata, services.NewSessionService(tokens),
		bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, gw client.Gateway, prefs metadata.Repository,
	sessions *services.SessionService, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		log:      log,
		gateway:  gw,
		prefs:    prefs,
		sessions: sessions,
		refs:     services.NewReferenceService(gw),
		reader:   reader,
		out:      out,
	}
}

// Run restores the last session preferences and blocks in the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Memorial content admin (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) restore(ctx context.Context) {
	a.restorePageSize(ctx)
	if info, err := a.sessions.Current(ctx); err == nil {
		a.println(fmt.Sprintf("signed in as %s", displaySubject(info)))
	}
	v, err := a.prefs.Get(ctx, lastEntityKey)
	if err != nil || len(v) == 0 {
		return
	}
	if d, err := models.Lookup(string(v)); err == nil {
		a.bind(d)
	}
}

// restorePageSize applies the remembered page size unless one was
// configured explicitly.
func (a *App) restorePageSize(ctx context.Context) {
	if a.config.PageSizeSet {
		return
	}
	v, err := a.prefs.Get(ctx, pageSizeKey)
	if err != nil || len(v) == 0 {
		return
	}
	if n, err := strconv.Atoi(string(v)); err == nil && n > 0 {
		a.config.PageSize = n
	}
}

// bind switches the current entity without fetching.
func (a *App) bind(d *models.Descriptor) {
	a.content = services.NewContentService(d, a.gateway, a.log)
	a.view = view.New(a.content, d, a.config.PageSize)
}

func (a *App) status() string {
	if a.view == nil {
		return ""
	}
	s := a.view.Snapshot()
	if s.Pagination.TotalPages > 0 {
		return fmt.Sprintf("%s %d/%d", a.view.Descriptor().Name, s.Page, s.Pagination.TotalPages)
	}
	return a.view.Descriptor().Name
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) savePref(ctx context.Context, key, value string) {
	if err := a.prefs.Set(ctx, key, []byte(value)); err != nil {
		a.log.Warn(ctx, "failed to save preference", "key", key, "error", err)
	}
}
