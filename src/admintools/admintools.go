package admintools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"git.dsvv.ac.in/cs/newsportal/src/auth"
	"git.dsvv.ac.in/cs/newsportal/src/editor"
	"git.dsvv.ac.in/cs/newsportal/src/filters"
	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/newsapi"
	"git.dsvv.ac.in/cs/newsportal/src/newsquery"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"git.dsvv.ac.in/cs/newsportal/src/utils"
	"git.dsvv.ac.in/cs/newsportal/src/website"
	"github.com/spf13/cobra"
)

const (
	AdminEmailEnv    = "PORTAL_ADMIN_EMAIL"
	AdminPasswordEnv = "PORTAL_ADMIN_PASSWORD"

	titleWidth = 60
)

var ErrMissingCredentials = errors.New("admin email and password are required")

func init() {
	adminCommand := &cobra.Command{
		Use:   "admin",
		Short: "Manage portal content from the command line",
	}
	website.WebsiteCommand.AddCommand(adminCommand)

	var email, password string
	adminCommand.PersistentFlags().StringVar(&email, "email", os.Getenv(AdminEmailEnv), "Admin email (default $"+AdminEmailEnv+")")
	adminCommand.PersistentFlags().StringVar(&password, "password", os.Getenv(AdminPasswordEnv), "Admin password (default $"+AdminPasswordEnv+")")

	newsCommand := &cobra.Command{
		Use:   "news",
		Short: "List, inspect and delete news articles",
	}
	adminCommand.AddCommand(newsCommand)

	var listFilters filters.FilterSet
	var drafts bool
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List news articles, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := commandContext()
			api := newsapi.NewFromConfig()
			if drafts {
				api = mustLogin(ctx, api, email, password)
			}
			exitOnError(ListNews(ctx, os.Stdout, api, listFilters))
		},
	}
	listCommand.Flags().StringVar(&listFilters.Category, "category", "", "Only this category")
	listCommand.Flags().StringVar(&listFilters.Club, "club", "", "Only this club (slug)")
	listCommand.Flags().StringVar(&listFilters.Search, "search", "", "Search titles, excerpts and content")
	listCommand.Flags().IntVar(&listFilters.Page, "page", 1, "Page of results")
	listCommand.Flags().BoolVar(&drafts, "drafts", false, "Log in and include unpublished drafts")
	newsCommand.AddCommand(listCommand)

	showCommand := &cobra.Command{
		Use:   "show [slug]",
		Short: "Print one article",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide a slug.\n\n")
				cmd.Usage()
				os.Exit(1)
			}
			ctx := commandContext()
			exitOnError(ShowNews(ctx, os.Stdout, newsapi.NewFromConfig(), args[0]))
		},
	}
	newsCommand.AddCommand(showCommand)

	var yes bool
	deleteCommand := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an article by id",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide an article id.\n\n")
				cmd.Usage()
				os.Exit(1)
			}
			ctx := commandContext()
			api := mustLogin(ctx, newsapi.NewFromConfig(), email, password)
			exitOnError(DeleteNews(ctx, os.Stdout, api, args[0], yes))
		},
	}
	deleteCommand.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	newsCommand.AddCommand(deleteCommand)

	imagesCommand := &cobra.Command{
		Use:   "images",
		Short: "Manage images in the backend's image store",
	}
	adminCommand.AddCommand(imagesCommand)

	uploadCommand := &cobra.Command{
		Use:   "upload [files...]",
		Short: "Upload image files in one request and print their urls",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide at least one file.\n\n")
				cmd.Usage()
				os.Exit(1)
			}
			ctx := commandContext()
			api := mustLogin(ctx, newsapi.NewFromConfig(), email, password)
			exitOnError(UploadImages(ctx, os.Stdout, api, args))
		},
	}
	imagesCommand.AddCommand(uploadCommand)

	registerCommand := &cobra.Command{
		Use:   "register [name] [email] [password]",
		Short: "Create an admin account",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 3 {
				fmt.Printf("You must provide a name, an email and a password.\n\n")
				cmd.Usage()
				os.Exit(1)
			}
			ctx := commandContext()
			res, err := newsapi.NewFromConfig().Register(ctx, newsapi.RegisterRequest{
				Name:     args[0],
				Email:    args[1],
				Password: args[2],
			})
			exitOnError(err)
			fmt.Printf("Registered %s <%s>\n", res.User.Name, res.User.Email)
		},
	}
	adminCommand.AddCommand(registerCommand)

	whoamiCommand := &cobra.Command{
		Use:   "whoami",
		Short: "Check the admin credentials against the backend",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := commandContext()
			api := mustLogin(ctx, newsapi.NewFromConfig(), email, password)
			user, err := api.Me(ctx)
			exitOnError(err)
			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		},
	}
	adminCommand.AddCommand(whoamiCommand)
}

func commandContext() context.Context {
	return logging.AttachLoggerToContext(logging.GlobalLogger(), context.Background())
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func mustLogin(ctx context.Context, api *newsapi.Client, email, password string) *newsapi.Client {
	authed, err := Login(ctx, api, email, password)
	exitOnError(err)
	return authed
}

// Login returns a copy of api that sends the admin's bearer token.
func Login(ctx context.Context, api *newsapi.Client, email, password string) (*newsapi.Client, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	res, err := api.WithSession(nil).Login(ctx, newsapi.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, oops.New(err, "failed to log in as %s", email)
	}
	return api.WithSession(auth.NewSession(res.Token, res.User)), nil
}

// ListNews prints one page of articles as a table. Drafts only show up when
// api is logged in.
func ListNews(ctx context.Context, out io.Writer, api *newsapi.Client, f filters.FilterSet) (err error) {
	defer utils.RecoverPanicAsError(&err)

	if f.Category != "" {
		if _, ok := models.ParseCategory(f.Category); !ok {
			return oops.New(nil, "unknown category %q", f.Category)
		}
	}

	page, err := api.ListNews(ctx, newsquery.ParamsFor(f))
	if err != nil {
		return oops.New(err, "failed to list news")
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tDATE\tTITLE")
	for _, item := range page.News {
		status := "published"
		if !item.IsPublished {
			status = "draft"
		}
		category := string(item.Category)
		if item.ClubName != "" {
			category += "/" + item.ClubName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			status,
			category,
			item.Date().Format("2006-01-02"),
			utils.Ellipsize(item.Title, titleWidth),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p := page.Pagination
	fmt.Fprintf(out, "Page %d of %d (%d total)\n",
		utils.IntMax(p.Page, 1),
		utils.NumPages(p.Total, utils.OrDefault(p.Limit, filters.ListingPageSize)),
		p.Total,
	)
	return nil
}

func ShowNews(ctx context.Context, out io.Writer, api *newsapi.Client, slug string) error {
	article, err := api.GetBySlug(ctx, slug)
	if err != nil {
		return oops.New(err, "failed to fetch %s", slug)
	}

	fmt.Fprintf(out, "%s\n", article.Title)
	fmt.Fprintf(out, "  id:        %s\n", article.ID)
	fmt.Fprintf(out, "  url:       %s\n", portalurl.BuildNewsDetail(article.Slug))
	fmt.Fprintf(out, "  category:  %s\n", article.Category.Label())
	if article.ClubName != "" {
		fmt.Fprintf(out, "  club:      %s\n", models.ClubDisplayName(article.ClubName))
	}
	fmt.Fprintf(out, "  author:    %s\n", article.Author)
	fmt.Fprintf(out, "  date:      %s\n", article.Date().Format("2 January 2006"))
	fmt.Fprintf(out, "  published: %v\n", article.IsPublished)
	if len(article.Tags) > 0 {
		fmt.Fprintf(out, "  tags:      %s\n", strings.Join(article.Tags, ", "))
	}
	fmt.Fprintf(out, "  images:    %d\n", len(article.Images))
	fmt.Fprintf(out, "\n%s\n", article.Excerpt)
	return nil
}

// UploadImages sends the files at paths to the backend together and prints
// the public id and url of each stored image, in the order given.
func UploadImages(ctx context.Context, out io.Writer, api *newsapi.Client, paths []string) error {
	uploads := make([]newsapi.Upload, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return oops.New(err, "failed to open %s", path)
		}
		defer f.Close()
		uploads = append(uploads, newsapi.Upload{Filename: filepath.Base(path), Body: f})
	}

	images, err := api.UploadImages(ctx, uploads)
	if err != nil {
		return oops.New(err, "failed to upload images")
	}
	for _, image := range images {
		fmt.Fprintf(out, "%s\t%s\n", image.PublicID, image.URL)
	}
	return nil
}

// DeleteNews removes an article. Without confirm nothing is sent to the
// backend.
func DeleteNews(ctx context.Context, out io.Writer, api *newsapi.Client, id string, confirm bool) error {
	notice, err := editor.New(api).Delete(ctx, id, confirm)
	if errors.Is(err, editor.ErrNotConfirmed) {
		return oops.New(err, "refusing to delete %s without --yes", id)
	}
	if err != nil {
		return oops.New(err, "%s", notice)
	}
	fmt.Fprintln(out, notice)
	return nil
}
