package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main wires the cli.App and forwards to the command bodies in
// commands.go.
func main() {
	if err := application().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// application defines the command-line surface: flags, commands, help
// text. Command bodies live in commands.go.
func application() *cli.App {
	return &cli.App{
		Name:  "idmdgp",
		Usage: "enumerate 3D embeddings of interval DMDGP instances",
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "run the Branch-and-Prune enumerator on a DMDGP file",
				ArgsUsage: "<input.dmdgp>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "tol",
						Usage: "distance/dihedral tolerance",
						Value: 1e-3,
					},
					&cli.IntFlag{
						Name:  "samples",
						Usage: "discretization count per interval edge",
						Value: 5,
					},
					&cli.IntFlag{
						Name:    "threads",
						Aliases: []string{"t"},
						Usage:   "worker count",
						Value:   1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "stop after this many solutions (0 = unlimited)",
					},
					&cli.IntFlag{
						Name:  "split",
						Usage: "thread-partitioning level (0 = auto)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "cancel the search after this wall-clock budget",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "write solutions as XYZ to this file (default stdout)",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "also store solutions in a SQLite database",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "report per-dihedral pruning counters",
					},
				},
				Action: solveCommand,
			},
			{
				Name:      "convert",
				Usage:     "parse a DMDGP file and write its normalized dump",
				ArgsUsage: "<input.dmdgp>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output path (default stdout)",
					},
				},
				Action: convertCommand,
			},
		},
	}
}
