// Command backoffice is the admin CLI for the consultancy site backend. It
// signs in against the API, keeps the session on disk between invocations,
// and drives the message inbox, portfolio, services, stack, and settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/brisatech/backoffice/internal/config"
	"github.com/brisatech/backoffice/internal/store"
	"github.com/brisatech/backoffice/pkg/backoffice"
	"github.com/brisatech/backoffice/pkg/models"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() error {
	fmt.Fprintln(os.Stderr, `usage: backoffice <command> [args]

commands:
  login -email <email> -password <password>
  logout
  whoami
  contact -name <name> -email <email> -message <text>
  messages list|show|read|respond|rm|stats
  projects list|rm|feature|activate
  services list
  stack list|stats
  settings show|company|social`)
	return fmt.Errorf("missing or unknown command")
}

func run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("BACKOFFICE_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	backoffice.SetLogger(logger)

	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	sess, err := store.New(ctx, cfg.SessionPath, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	client, err := backoffice.NewClient(backoffice.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout.Std(),
	}, sess, nil)
	if err != nil {
		return err
	}
	client.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "session expired, run `backoffice login` again")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return cmdLogin(ctx, client, rest)
	case "logout":
		return client.Auth.Logout(ctx)
	case "whoami":
		return cmdWhoami(client)
	case "contact":
		return cmdContact(ctx, client, rest)
	case "messages":
		return cmdMessages(ctx, client, rest)
	case "projects":
		return cmdProjects(ctx, client, rest)
	case "services":
		return cmdServices(ctx, client, rest)
	case "stack":
		return cmdStack(ctx, client, rest)
	case "settings":
		return cmdSettings(ctx, client, rest)
	default:
		return usage()
	}
}

func cmdLogin(ctx context.Context, client *backoffice.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	res, err := client.Auth.Login(ctx, backoffice.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s> (%s)\n", res.User.Name, res.User.Email, res.User.Role)
	return nil
}

func cmdWhoami(client *backoffice.Client) error {
	if !client.Auth.IsAuthenticated() {
		fmt.Println("not signed in")
		return nil
	}
	u := client.Auth.CurrentUser()
	if u == nil {
		fmt.Println("signed in (no cached profile)")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func cmdContact(ctx context.Context, client *backoffice.Client, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	phone := fs.String("phone", "", "phone (optional)")
	company := fs.String("company", "", "company (optional)")
	message := fs.String("message", "", "message text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := client.Messages.Create(ctx, backoffice.MessageInput{
		Name: *name, Email: *email, Phone: *phone, Company: *company, Message: *message,
	})
	if err != nil {
		return err
	}
	fmt.Printf("message sent (id %s)\n", m.ID)
	return nil
}

func cmdMessages(ctx context.Context, client *backoffice.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: messages list|show|read|respond|rm|stats")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		fs := flag.NewFlagSet("messages list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status (new|read|responded)")
		search := fs.String("search", "", "free-text search")
		page := fs.Int("page", 1, "page")
		size := fs.Int("size", 20, "page size")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		msgs, pagination, err := client.Messages.ListPage(ctx, backoffice.MessageListParams{
			Status: *status, Search: *search, Page: *page, PageSize: *size,
		})
		if err != nil {
			return err
		}
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tSTATUS\tFROM\tEMAIL\tRECEIVED")
		for _, m := range msgs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Status, m.Name, m.Email, m.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		fmt.Printf("page %d/%d (%d total)\n", pagination.Page, pagination.TotalPages, pagination.TotalItems)
		return nil
	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: messages show <id>")
		}
		m, err := client.Messages.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("from: %s <%s>\nstatus: %s\nreceived: %s\n\n%s\n", m.Name, m.Email, m.Status, m.CreatedAt.Format("2006-01-02 15:04"), m.Message)
		if m.Notes != "" {
			fmt.Printf("\nnotes: %s\n", m.Notes)
		}
		return nil
	case "read":
		if len(rest) != 1 {
			return fmt.Errorf("usage: messages read <id>")
		}
		_, err := client.Messages.MarkRead(ctx, rest[0])
		return err
	case "respond":
		fs := flag.NewFlagSet("messages respond", flag.ExitOnError)
		notes := fs.String("notes", "", "response notes")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: messages respond <id> [-notes ...]")
		}
		_, err := client.Messages.MarkResponded(ctx, fs.Arg(0), *notes)
		return err
	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: messages rm <id>")
		}
		return client.Messages.Delete(ctx, rest[0])
	case "stats":
		stats, err := client.Messages.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("total: %d\nnew: %d\nread: %d\nresponded: %d\nthis month: %d (last month %d)\n",
			stats.Total, stats.New, stats.Read, stats.Responded, stats.ThisMonth, stats.LastMonth)
		return nil
	default:
		return fmt.Errorf("unknown messages subcommand %q", sub)
	}
}

func cmdProjects(ctx context.Context, client *backoffice.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: projects list|rm|feature|activate")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		fs := flag.NewFlagSet("projects list", flag.ExitOnError)
		featured := fs.Bool("featured", false, "only featured")
		category := fs.String("category", "", "filter by category")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		params := backoffice.ProjectListParams{Category: *category}
		if *featured {
			params.Featured = boolPtr(true)
		}
		projects, err := client.Projects.List(ctx, params)
		if err != nil {
			return err
		}
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tFEATURED\tACTIVE")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n", p.ID, p.Title, p.Category, p.Featured, p.IsActive)
		}
		return w.Flush()
	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: projects rm <id>")
		}
		return client.Projects.Delete(ctx, rest[0])
	case "feature":
		if len(rest) != 2 {
			return fmt.Errorf("usage: projects feature <id> <true|false>")
		}
		_, err := client.Projects.ToggleFeatured(ctx, rest[0], rest[1] == "true")
		return err
	case "activate":
		if len(rest) != 2 {
			return fmt.Errorf("usage: projects activate <id> <true|false>")
		}
		_, err := client.Projects.ToggleActive(ctx, rest[0], rest[1] == "true")
		return err
	default:
		return fmt.Errorf("unknown projects subcommand %q", sub)
	}
}

func cmdServices(ctx context.Context, client *backoffice.Client, args []string) error {
	if len(args) == 0 || args[0] != "list" {
		return fmt.Errorf("usage: services list")
	}
	services, err := client.Services.List(ctx, backoffice.ServiceListParams{})
	if err != nil {
		return err
	}
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tACTIVE")
	for _, s := range services {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", s.ID, s.Title, s.Category, s.IsActive)
	}
	return w.Flush()
}

func cmdStack(ctx context.Context, client *backoffice.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: stack list|stats")
	}
	switch args[0] {
	case "list":
		grouped, err := client.Stack.GroupByCategory(ctx)
		if err != nil {
			return err
		}
		for _, category := range []string{
			models.TechCategoryFrontend, models.TechCategoryBackend, models.TechCategoryDatabase,
			models.TechCategoryDevops, models.TechCategoryDesign, models.TechCategoryMobile,
		} {
			techs := grouped[category]
			if len(techs) == 0 {
				continue
			}
			fmt.Printf("%s:\n", category)
			for _, t := range techs {
				fmt.Printf("  %s (%s)\n", t.Name, t.Level)
			}
		}
		return nil
	case "stats":
		stats, err := client.Stack.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("total: %d\n", stats.TotalTechnologies)
		for category, n := range stats.ByCategory {
			fmt.Printf("  %s: %d\n", category, n)
		}
		return nil
	default:
		return fmt.Errorf("unknown stack subcommand %q", args[0])
	}
}

func cmdSettings(ctx context.Context, client *backoffice.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: settings show|company|social")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		st, err := client.Settings.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("company: %s <%s> %s\naddress: %s\n", st.CompanyInfo.Name, st.CompanyInfo.Email, st.CompanyInfo.Phone, st.CompanyInfo.Address)
		if st.SocialLinks.Github != "" {
			fmt.Printf("github: %s\n", st.SocialLinks.Github)
		}
		if st.SocialLinks.LinkedIn != "" {
			fmt.Printf("linkedin: %s\n", st.SocialLinks.LinkedIn)
		}
		return nil
	case "company":
		fs := flag.NewFlagSet("settings company", flag.ExitOnError)
		name := fs.String("name", "", "company name")
		email := fs.String("email", "", "contact email")
		phone := fs.String("phone", "", "phone")
		address := fs.String("address", "", "address")
		description := fs.String("description", "", "description")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		_, err := client.Settings.UpdateCompany(ctx, models.CompanyInfo{
			Name: *name, Email: *email, Phone: *phone, Address: *address, Description: *description,
		})
		return err
	case "social":
		fs := flag.NewFlagSet("settings social", flag.ExitOnError)
		github := fs.String("github", "", "github URL")
		linkedin := fs.String("linkedin", "", "linkedin URL")
		instagram := fs.String("instagram", "", "instagram URL")
		twitter := fs.String("twitter", "", "twitter URL")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		_, err := client.Settings.UpdateSocial(ctx, models.SocialLinks{
			Github: *github, LinkedIn: *linkedin, Instagram: *instagram, Twitter: *twitter,
		})
		return err
	default:
		return fmt.Errorf("unknown settings subcommand %q", sub)
	}
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func boolPtr(b bool) *bool { return &b }
