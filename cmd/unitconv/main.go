package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/twinfer/unitconv/pkg/convert"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatalf("unitconv: %v", err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "unitconv",
		Usage:     "convert a value between units of measure",
		UsageText: `unitconv [--catalog FILE] [--output string|value|unit] '("3 kilometer", "inches")'`,
		Writer:    out,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "YAML catalog with additional unit families (repeatable)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "string",
				Usage:   "string, value or unit",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log conversions to stderr",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	var opts []convert.Option
	for _, path := range c.StringSlice("catalog") {
		opts = append(opts, convert.WithCatalogFile(path))
	}
	if c.Bool("debug") {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, convert.WithLogger(logger), convert.WithDebugMode(true))
	}

	converter, err := convert.NewConverter(opts...)
	if err != nil {
		return err
	}

	// Shells split the request on spaces, so the arguments are rejoined.
	request := strings.Join(c.Args().Slice(), " ")

	switch c.String("output") {
	case "value":
		v, err := converter.ConvertToValue(request)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, strconv.FormatFloat(v, 'f', -1, 64))
		return err
	case "unit":
		m, err := converter.ConvertToUnit(request)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", strconv.FormatFloat(m.Value(), 'f', -1, 64), m.Unit(), m.Family())
		return err
	case "string":
		s, err := converter.ConvertToString(request)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, s)
		return err
	default:
		return fmt.Errorf("unknown output %q, expected string, value or unit", c.String("output"))
	}
}
