package cmd

import (
	"errors"
	"net/http"

	"git.dsvv.ac.in/cs/newsportal/src/devapi"
	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/website"
	"github.com/spf13/cobra"
)

func init() {
	var addr string
	var numArticles int

	devAPICommand := &cobra.Command{
		Use:   "devapi",
		Short: "Run an in-memory news backend for local development",
		Run: func(cmd *cobra.Command, args []string) {
			store := devapi.NewStore()
			if err := devapi.Seed(store, numArticles); err != nil {
				logging.Fatal().Err(err).Msg("failed to seed fake backend")
			}

			logging.Info().
				Str("addr", addr).
				Str("email", devapi.DevAdminEmail).
				Str("password", devapi.DevAdminPassword).
				Int("articles", numArticles).
				Msg("Serving the fake news backend")

			err := http.ListenAndServe(addr, devapi.NewServer(store))
			if !errors.Is(err, http.ErrServerClosed) {
				logging.Fatal().Err(err).Msg("fake backend shut down unexpectedly")
			}
		},
	}
	devAPICommand.Flags().StringVar(&addr, "addr", ":5000", "address to listen on")
	devAPICommand.Flags().IntVar(&numArticles, "articles", 40, "number of articles to seed")

	website.WebsiteCommand.AddCommand(devAPICommand)
}
