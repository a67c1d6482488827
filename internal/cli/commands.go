package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mangashelf/internal/browser"
	"mangashelf/pkg/models"
)

type filterFlags struct {
	genre  string
	letter string
	search string
	page   int
	sort   string
	query  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.genre, "genre", "", "only titles with this genre")
	cmd.Flags().StringVar(&f.letter, "letter", "", `first letter of the title ("#" for anything else)`)
	cmd.Flags().StringVar(&f.search, "search", "", "substring of the title or code")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().StringVar(&f.sort, "sort", "", "order of the visible titles (title|rating)")
	cmd.Flags().StringVar(&f.query, "query", "", "address bar query to restore; other filter flags are applied on top")
}

// state mirrors the page: the restored query first, then each explicit
// flag as if the user changed that control.
func (f *filterFlags) state(cmd *cobra.Command) (browser.State, error) {
	st := browser.Deserialize(f.query)
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if changed("genre") {
		st.Genre, st.Page = f.genre, 1
	}
	if changed("letter") {
		letter, ok := browser.NormalizeLetter(f.letter)
		if !ok {
			return browser.State{}, fmt.Errorf("%w: %q", browser.ErrInvalidLetter, f.letter)
		}
		st.Letter, st.Page = letter, 1
	}
	if changed("search") {
		st.Search, st.Page = f.search, 1
	}
	if changed("page") {
		if f.page < 1 {
			return browser.State{}, fmt.Errorf("%w: %d", browser.ErrPageOutOfRange, f.page)
		}
		st.Page = f.page
	}
	return st, nil
}

func (f *filterFlags) sortKey() (browser.SortKey, error) {
	return browser.ParseSortKey(f.sort)
}

func newListCmd(app *App) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.state(cmd)
			if err != nil {
				return err
			}
			key, err := flags.sortKey()
			if err != nil {
				return err
			}

			items := app.load(cmd.Context())
			if app.JSON {
				s := browser.NewSession(items, st, app.language(), browser.WithSort(key))
				v := s.View()
				page := v.PageItems
				if page == nil {
					page = []models.Item{}
				}
				return app.writeJSON(cmd.OutOrStdout(), map[string]any{
					"total":       v.Total(),
					"page":        v.Page,
					"total_pages": v.TotalPages,
					"page_size":   browser.PageSize,
					"query":       s.Query(),
					"items":       page,
					"pagination":  s.Plan(),
				})
			}

			term := newTermRenderer(cmd.OutOrStdout())
			browser.NewSession(items, st, app.language(), browser.WithSort(key),
				browser.WithRenderer(term), browser.WithHistory(term))
			return term.Flush()
		},
	}
	flags.register(cmd)
	return cmd
}

func newGenresCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List every genre in first-seen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			genres := browser.Genres(app.load(cmd.Context()))
			if app.JSON {
				return app.writeJSON(cmd.OutOrStdout(), map[string]any{"genres": genres})
			}
			for _, g := range genres {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := browser.NewSession(app.load(cmd.Context()), browser.DefaultState())
			it, err := s.Select(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if app.JSON {
				return app.writeJSON(cmd.OutOrStdout(), it)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), newTermRenderer(cmd.OutOrStdout()).detail(it))
			return err
		},
	}
}

func newURLCmd(app *App) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the shareable query for the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.state(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), browser.WithQuery("/", st))
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if a.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
