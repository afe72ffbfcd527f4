package cmd

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/fetcher"
	"portfolio/internal/loader"
	"portfolio/internal/models"
	"portfolio/internal/pipeline"
	"portfolio/internal/render"
	"portfolio/internal/view"
)

var errLoadFailed = errors.New("articles could not be loaded")

var (
	flagCategory string
	flagYear     string
	flagKeyword  string
	flagPage     int
	flagWidth    int
	flagJSON     bool
	flagSource   string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Load the articles once and print them",
	Long:  "Load the configured feed, apply the filters and print one page of articles, newest first.",
	RunE:  runArticles,
}

func init() {
	articlesCmd.Flags().StringVar(&flagCategory, "category", models.AllValue, "category to show")
	articlesCmd.Flags().StringVar(&flagYear, "year", models.AllValue, "publish year to show")
	articlesCmd.Flags().StringVarP(&flagKeyword, "keyword", "q", "", "case-insensitive keyword")
	articlesCmd.Flags().IntVar(&flagPage, "page", 1, "page to show")
	articlesCmd.Flags().IntVar(&flagWidth, "width", 80, "output width")
	articlesCmd.Flags().BoolVar(&flagJSON, "json", false, "print the page as JSON")
	articlesCmd.Flags().StringVar(&flagSource, "source", "", "feed url or path (overrides FEED_URL)")
}

func runArticles(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flagSource != "" {
		cfg.Feed.URL = flagSource
	}

	styles, err := config.LoadCategoryStyles(cfg.Site.CategoryStylesFile)
	if err != nil {
		return err
	}

	// One-shot loads keep no history
	articleLoader, err := loader.New(fetcher.New(), cache.NewManager(cfg.CacheTTL), nil, cfg.Feed)
	if err != nil {
		return err
	}

	opts := view.Options{
		Title:      cfg.Site.Title,
		ProfileURL: cfg.Site.ProfileURL,
		Styles:     styles,
	}

	var page *view.Page
	collection, loadErr := articleLoader.Load(cmd.Context())
	if loadErr != nil {
		page = view.Failed(opts)
	} else {
		state := models.ViewState{
			Collection: collection,
			Filters: models.FilterState{
				Category: flagCategory,
				Year:     flagYear,
				Keyword:  strings.ToLower(strings.TrimSpace(flagKeyword)),
			},
			Pagination: models.PaginationState{
				CurrentPage:  flagPage,
				ItemsPerPage: cfg.Feed.PageSize,
			},
		}
		page = view.Project(state, pipeline.Apply(state), opts)
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(page); err != nil {
			return err
		}
	} else if err := render.NewTerminalRenderer(flagWidth).Render(cmd.OutOrStdout(), page); err != nil {
		return err
	}

	if loadErr != nil {
		log.Printf("Load failed: %v", loadErr)
		return errLoadFailed
	}
	return nil
}
