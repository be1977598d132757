package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-auth-policy/internal/config"
	"github.com/jrsteele09/go-auth-policy/internal/sqlitedb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Error().Err(err).Msg("authctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	fs.SetOutput(out)
	quiet := fs.Bool("q", false, "do not print the banner")
	dbPath := fs.String("db", "", "sqlite database path (defaults to DB_PATH)")
	fs.Usage = func() { usage(fs, out) }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogging(c)

	if !*quiet {
		displayAppname(c.GetAppName(), out)
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok || fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	// challenge is pure and needs no database.
	if cmd.pure {
		return cmd.run(ctx, nil, fs.Arg(1), out)
	}

	path := *dbPath
	if path == "" {
		path = c.GetDBPath()
	}
	db, err := sqlitedb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	return cmd.run(ctx, db, fs.Arg(1), out)
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppname(appname string, out io.Writer) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}

func usage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintln(out, "usage: authctl [flags] <command> <argument>")
	fmt.Fprintln(out, "\ncommands:")
	for _, name := range commandOrder {
		fmt.Fprintf(out, "  %-13s %s\n", name, commands[name].help)
	}
	fmt.Fprintln(out, "\nflags:")
	fs.PrintDefaults()
}
