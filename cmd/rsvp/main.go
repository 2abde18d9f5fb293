// Command rsvp parses documents and plays them one word at a time in the
// terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kylemclaren/speed-reader/internal/playback"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "extractor",
			Value: "heuristic",
			Usage: "HTML extraction strategy: heuristic or readability",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: fetchTimeout,
			Usage: "timeout for fetching URLs",
		},
	}

	return &cli.App{
		Name:      "rsvp",
		Usage:     "speed-read text, files and web articles",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "print the words, sentences and title of a document",
				ArgsUsage: "<file|url|->",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "override the document title",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "json",
						Usage:   "output format: json or yaml",
					},
				}, sourceFlags...),
				Action: parseAction,
			},
			{
				Name:      "read",
				Usage:     "play a document in the terminal",
				ArgsUsage: "<file|url|->",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "wpm",
						Value: playback.DefaultWPM,
						Usage: fmt.Sprintf("reading speed in words per minute (%d-%d)", playback.MinWPM, playback.MaxWPM),
					},
					&cli.BoolFlag{
						Name:  "context",
						Usage: "show the current sentence under each word",
					},
					&cli.IntFlag{
						Name:  "from",
						Usage: "start at this word index",
					},
				}, sourceFlags...),
				Action: readAction,
			},
		},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}
