package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mangashelf/internal/browser"
	"mangashelf/internal/catalog"
	"mangashelf/pkg/logging"
	"mangashelf/pkg/models"
	"mangashelf/pkg/utils"
)

type App struct {
	Source     string
	Env        string
	Lang       string
	JSON       bool
	PrettyJSON bool
	Verbose    bool

	cfg    utils.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "mangashelf",
		Short:        "Browse the manga catalog from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # First page of the whole catalog
  mangashelf list

  # Action titles starting with N, sorted by rating
  mangashelf list --genre Action --letter N --sort rating

  # Restore a shared address bar query
  mangashelf list --query "page=2&genre=Action"

  # Read from a local file instead of the configured source
  mangashelf --source data/manga_data.json genres
`),
	}

	cmd.PersistentFlags().StringVar(&app.Source, "source", "", "catalog location (URL or file), overrides the configured source")
	cmd.PersistentFlags().StringVar(&app.Env, "env", "", "environment (local|development|dev selects the local source)")
	cmd.PersistentFlags().StringVar(&app.Lang, "lang", "", "collation language for title sorting")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "print JSON instead of cards")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "indent JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "log loader activity to stderr")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.LoadConfig()
		if err != nil {
			return err
		}
		if app.Env != "" {
			cfg.Environment = app.Env
		}
		if app.Lang != "" {
			cfg.Language = app.Lang
		}
		app.cfg = cfg
		app.logger = zap.NewNop()
		if app.Verbose {
			app.logger = logging.Must("debug")
		}
		return nil
	}

	cmd.AddCommand(
		newListCmd(app),
		newGenresCmd(app),
		newShowCmd(app),
		newURLCmd(app),
	)
	return cmd
}

func (a *App) loader() *catalog.Loader {
	l := catalog.NewLoader(a.cfg, a.logger)
	if a.Source != "" {
		src := catalog.NewSource(a.Source, a.cfg.Source.FetchTimeout.Std())
		l.Local, l.Remote = src, src
	}
	return l
}

// load never fails; an unreachable catalog reads as an empty one.
func (a *App) load(ctx context.Context) []models.Item {
	return a.loader().Load(ctx)
}

func (a *App) language() browser.Option {
	return browser.WithLanguage(browser.ParseLanguage(a.cfg.Language))
}
