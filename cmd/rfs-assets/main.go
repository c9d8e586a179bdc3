// Command rfs-assets builds, lists and cleans the application's asset bundles.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dalemusser/rfs/internal/app/settings"
	"github.com/dalemusser/rfs/internal/app/shop"
	"github.com/dalemusser/rfs/internal/app/system/assets"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rfs-assets:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cli := kingpin.New("rfs-assets", "Build and inspect the rfs static asset bundles")
	cli.UsageWriter(out)
	cli.ErrorWriter(out)
	cli.Terminate(nil)

	static := cli.Flag("static", "Static folder holding bundle sources and outputs").Default(settings.Default.StaticFolder).String()
	prefix := cli.Flag("url-prefix", "URL path the static folder is served under").Default(settings.Default.StaticURLPath).String()
	debug := cli.Flag("debug", "Report source URLs instead of built bundles").Bool()
	verbose := cli.Flag("verbose", "Log each build step").Short('v').Bool()

	buildCmd := cli.Command("build", "Build bundles (all when none are named)")
	buildNames := buildCmd.Arg("bundle", "Bundle names").Strings()
	listCmd := cli.Command("list", "List bundles with their sources and URLs")
	cleanCmd := cli.Command("clean", "Remove built bundle outputs")
	cleanNames := cleanCmd.Arg("bundle", "Bundle names").Strings()

	cmd, err := cli.Parse(args)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	env := assets.New(*static, *prefix, logger)
	env.Debug = *debug
	if err := shop.DeclareBundles(env); err != nil {
		return err
	}

	switch cmd {
	case buildCmd.FullCommand():
		names := *buildNames
		if len(names) == 0 {
			names = env.Names()
		}
		for _, name := range names {
			p, err := env.Build(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "built %s -> %s\n", name, p)
		}
	case listCmd.FullCommand():
		for _, name := range env.Names() {
			b, _ := env.Get(name)
			urls, err := env.URLs(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\t%v\n", name, b.Output, b.Filters)
			for _, c := range b.Contents {
				fmt.Fprintf(out, "  src %s\n", c)
			}
			for _, u := range urls {
				fmt.Fprintf(out, "  url %s\n", u)
			}
		}
	case cleanCmd.FullCommand():
		if err := env.Clean(*cleanNames...); err != nil {
			return err
		}
		fmt.Fprintln(out, "cleaned")
	}
	return nil
}
