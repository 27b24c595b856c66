package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/guitarkit/strum/internal/repositories"
	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/session"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/guitarkit/strum/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	client  *services.Client
	auth    *services.AuthAPI
	chords  *services.ChordAPI
	songs   *services.SongAPI
	session *session.Store
	engine  *tasks.LibraryEngine
	logger  *log.Logger
	output  io.Writer

	db    *sql.DB
	cache *repositories.CacheRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Client  *services.Client
	Auth    *services.AuthAPI
	Chords  *services.ChordAPI
	Songs   *services.SongAPI
	Session *session.Store
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = services.NewClient(opts.Config.API.BaseURL, &http.Client{Timeout: opts.Config.API.Timeout()})
	}
	if opts.Auth == nil {
		opts.Auth = services.NewAuthAPI(opts.Client)
	}
	if opts.Chords == nil {
		opts.Chords = services.NewChordAPI(opts.Client)
	}
	if opts.Songs == nil {
		opts.Songs = services.NewSongAPI(opts.Client)
	}
	if opts.Session == nil {
		opts.Session = session.NewStore(opts.Auth, opts.Client, opts.Config.Storage.ResolveStateDir(), opts.Logger)
	}

	engine := tasks.NewLibraryEngine(opts.Chords, opts.Songs, opts.Chords)

	return &Runner{
		config:  opts.Config,
		client:  opts.Client,
		auth:    opts.Auth,
		chords:  opts.Chords,
		songs:   opts.Songs,
		session: opts.Session,
		engine:  engine,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// cacheRepo lazily opens the local SQLite cache. A missing or broken
// database is not fatal to any command, callers get nil and skip caching.
func (r *Runner) cacheRepo() *repositories.CacheRepository {
	if r.cache != nil {
		return r.cache
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Debug("cache unavailable", "error", err)
		return nil
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	r.cache = repositories.NewCacheRepository(db)
	return r.cache
}

// Close releases the cache database handle if one was opened.
func (r *Runner) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, chordsCommand, songsCommand, libraryCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
