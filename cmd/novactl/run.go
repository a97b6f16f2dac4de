package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keremsimsek1907/nova-app/internal/client"
)

const usage = `usage: novactl [flags] <command> [args]

commands:
  register <email> <password>   create an account and log in
  login <email> <password>      log in and store the token
  logout                        forget the stored token
  me                            show the current account
  items                         list your items, newest first
  add <name>                    create an item
  rm <id>                       delete an item
  status                        query the API probe

flags:
`

type options struct {
	baseURL   string
	tokenFile string
	timeout   time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	fs := flag.NewFlagSet("novactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	opts := options{}
	fs.StringVar(&opts.baseURL, "url", envOr("NOVA_URL", "http://localhost:8080"), "API base URL")
	fs.StringVar(&opts.tokenFile, "token-file", defaultTokenFile(), "file holding the session token")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-command timeout")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return options{}, nil, errors.New("missing command")
	}
	return opts, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, rest, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	tokens := tokenFile(opts.tokenFile)
	token, err := tokens.load()
	if err != nil {
		return err
	}
	c := client.New(opts.baseURL, client.WithToken(token))

	err = dispatch(ctx, c, rest[0], rest[1:], stdout)
	if errors.Is(err, client.ErrUnauthorized) {
		if rmErr := tokens.clear(); rmErr != nil {
			return rmErr
		}
		return errors.New("session expired or invalid, log in again")
	}
	if err != nil {
		return err
	}

	if c.Token() != token {
		return tokens.save(c.Token())
	}
	return nil
}

func dispatch(ctx context.Context, c *client.Client, cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "register":
		if len(args) != 2 {
			return errors.New("register needs <email> <password>")
		}
		user, err := c.Register(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if err := c.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		return printJSON(stdout, user)

	case "login":
		if len(args) != 2 {
			return errors.New("login needs <email> <password>")
		}
		if err := c.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "logged in")
		return nil

	case "logout":
		c.Logout()
		fmt.Fprintln(stdout, "logged out")
		return nil

	case "me":
		user, err := c.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, user)

	case "items":
		items, err := c.ListItems(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(stdout, "%s\t%s\n", it.ID, it.Name)
		}
		return nil

	case "add":
		if len(args) == 0 {
			return errors.New("add needs <name>")
		}
		item, err := c.CreateItem(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(stdout, item)

	case "rm":
		if len(args) != 1 {
			return errors.New("rm needs <id>")
		}
		if err := c.DeleteItem(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "ok")
		return nil

	case "status":
		status, err := c.Status(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, status)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// tokenFile persists the session token with owner-only permissions.
type tokenFile string

func (f tokenFile) load() (string, error) {
	b, err := os.ReadFile(string(f))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (f tokenFile) save(token string) error {
	if token == "" {
		return f.clear()
	}
	if err := os.MkdirAll(filepath.Dir(string(f)), 0o700); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := os.WriteFile(string(f), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (f tokenFile) clear() error {
	if err := os.Remove(string(f)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".novactl-token"
	}
	return filepath.Join(home, ".novactl-token")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
