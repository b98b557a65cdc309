package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bodgit/blockcard"
	"github.com/bodgit/blockcard/ansi"
	"github.com/bodgit/blockcard/frame"
	"github.com/bodgit/blockcard/player"
	"github.com/bodgit/blockcard/profile"
	"github.com/bodgit/blockcard/sheet"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newCard(c *cli.Context) (*blockcard.Card, func(), error) {
	logger := newLogger(c)

	if c.String("db") == "" {
		return blockcard.New(nil, logger), func() {}, nil
	}

	db, err := blockcard.NewAssetDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return blockcard.New(db, logger), func() { db.Close() }, nil
}

func loadPanel(c *cli.Context) (*profile.Panel, error) {
	if c.String("config") == "" {
		return blockcard.DefaultProfile()
	}
	b, err := ioutil.ReadFile(c.String("config"))
	if err != nil {
		return nil, err
	}
	return profile.Parse(b)
}

// renderCard renders every frame of the animation with the profile panel
// attached
func renderCard(c *cli.Context) ([]string, *sheet.Sheet, error) {
	mode, ok := ansi.ParseColorMode(c.String("color"))
	if !ok {
		return nil, nil, fmt.Errorf("unknown color mode \"%s\"", c.String("color"))
	}

	panel, err := loadPanel(c)
	if err != nil {
		return nil, nil, err
	}

	card, closer, err := newCard(c)
	if err != nil {
		return nil, nil, err
	}
	defer closer()

	s, err := card.Sheet(c.String("animation"))
	if err != nil {
		return nil, nil, err
	}

	frames, err := card.Render(c.Context, s.Frames, ansi.NewRenderer(mode))
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt animation: %w", err)
	}

	lines := panel.Lines(mode)
	for i := range frames {
		frames[i] = profile.Attach(frames[i], lines)
	}

	return frames, s, nil
}

// readFrame reads a frame file as is, anything else is treated as an image
// and encoded
func readFrame(file string, colors int) ([]byte, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".dat", ".frame":
		if _, err := frame.Decode(b); err != nil {
			return nil, err
		}
		return b, nil
	}

	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := frame.Encode(buf, m, &frame.Options{NumColors: colors}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func describe(b []byte) (string, error) {
	if sheet.IsSheet(b) {
		s := new(sheet.Sheet)
		if err := s.UnmarshalBinary(b); err != nil {
			return "", err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "sheet: %d frames, %v delay\n", s.Length(), s.Delay)
		for i, f := range s.Frames {
			d, err := describe(f)
			if err != nil {
				return "", fmt.Errorf("frame %d: %w", i, err)
			}
			fmt.Fprintf(&sb, "  %d: %s", i, d)
		}
		return sb.String(), nil
	}

	config, err := frame.DecodeConfig(b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("frame: %dx%d, %d colors, %d bits per pixel\n", config.Width, config.Height, len(config.Palette), frame.BitCount(len(config.Palette))), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "blockcard"
	app.Usage = "Animated profile card for the terminal"
	app.Version = "1.0.0"

	renderFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "animation",
			Aliases: []string{"a"},
			Value:   blockcard.DefaultAnimation,
			Usage:   "name of the animation",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"BLOCKCARD_CONFIG"},
			Usage:   "path to profile panel YAML",
		},
		&cli.StringFlag{
			Name:  "color",
			Value: "auto",
			Usage: "color mode; auto, truecolor or 256",
		},
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BLOCKCARD_DB"},
			Usage:   "path to asset database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.DefaultCommand = "play"

	app.Commands = []*cli.Command{
		{
			Name:  "play",
			Usage: "Play the animated card",
			Flags: append(renderFlags,
				&cli.DurationFlag{
					Name:  "delay",
					Usage: "time each frame is shown, overrides the animation",
				},
				&cli.DurationFlag{
					Name:  "pause",
					Value: player.DefaultPause,
					Usage: "time between each cycle of frames",
				},
			),
			Action: func(c *cli.Context) error {
				frames, s, err := renderCard(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p := player.New(player.NewStdTerminal(), frames, newLogger(c))
				switch {
				case c.Duration("delay") > 0:
					p.Delay = c.Duration("delay")
				case s.Delay > 0:
					p.Delay = s.Delay
				}
				p.Pause = c.Duration("pause")

				ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "render",
			Usage: "Print a single frame of the card",
			Flags: append(renderFlags,
				&cli.IntFlag{
					Name:  "frame",
					Usage: "index of the frame",
				},
			),
			Action: func(c *cli.Context) error {
				frames, _, err := renderCard(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				i := c.Int("frame")
				if i < 0 || i >= len(frames) {
					return cli.Exit(fmt.Sprintf("frame %d out of range, animation has %d frames", i, len(frames)), 1)
				}

				fmt.Println(frames[i])

				return nil
			},
		},
		{
			Name:      "encode",
			Usage:     "Convert an image to a frame",
			ArgsUsage: "IMAGE FRAME",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Value: frame.DefaultColors,
					Usage: "maximum number of colors",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := readFrame(c.Args().Get(0), c.Int("colors"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "pack",
			Usage:     "Bundle frames or images into a sheet",
			ArgsUsage: "SHEET FILE...",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "delay",
					Value: player.DefaultDelay,
					Usage: "time each frame is shown",
				},
				&cli.IntFlag{
					Name:  "colors",
					Value: frame.DefaultColors,
					Usage: "maximum number of colors for images",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				s := sheet.New(c.Duration("delay"))
				for _, file := range c.Args().Slice()[1:] {
					b, err := readFrame(file, c.Int("colors"))
					if err != nil {
						return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
					}
					logger.Printf("Adding \"%s\", %d bytes\n", file, len(b))
					s.Add(b)
				}

				b, err := s.MarshalBinary()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().First(), b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Store a sheet in the asset database",
			ArgsUsage: "NAME SHEET",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				if c.String("db") == "" {
					return cli.Exit("no asset database, use --db", 1)
				}

				b, err := ioutil.ReadFile(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				s := new(sheet.Sheet)
				if err := s.UnmarshalBinary(b); err != nil {
					return cli.Exit(err, 1)
				}

				card, closer, err := newCard(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := card.Import(c.Args().First(), s); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Describe a frame or sheet",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := ioutil.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				d, err := describe(b)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Print(d)

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the available animations",
			Action: func(c *cli.Context) error {
				card, closer, err := newCard(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				names, err := card.Animations()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
