package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/korzhev/idmdgp/dmdgp"
	"github.com/korzhev/idmdgp/enum"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/soldb"
)

// solveCommand parses the instance, runs the enumerator and writes the
// solution stream.
func solveCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}

	p, g, err := dmdgp.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	e, err := enum.New(p, g,
		enum.WithDDFTol(c.Float64("tol")),
		enum.WithIntervalSamples(c.Int("samples")),
		enum.WithThreads(c.Int("threads")),
		enum.WithEmitLimit(c.Int("limit")),
		enum.WithSplitLevel(c.Int("split")),
	)
	if err != nil {
		return err
	}

	// Timeouts are external: a wall-clock watcher feeding the
	// cancellation flag.
	if d := c.Duration("timeout"); d > 0 {
		timer := time.AfterFunc(d, e.Cancel)
		defer timer.Stop()
	}

	start := time.Now()
	sols, err := e.Run()
	if err != nil {
		return err
	}

	st := e.Stats()
	fmt.Fprintf(os.Stderr, "idmdgp: %d solution(s) in %s, %d node(s)\n",
		len(sols), time.Since(start).Round(time.Millisecond), st.Nodes)
	fmt.Fprintf(os.Stderr, "  torsion  prunes: %d/%d\n", st.Torsion.Prunes, st.Torsion.Tests)
	fmt.Fprintf(os.Stderr, "  improper prunes: %d/%d\n", st.Improper.Prunes, st.Improper.Tests)
	fmt.Fprintf(os.Stderr, "  distance prunes: %d/%d exact, %d/%d interval\n",
		st.Distance.Prunes, st.Distance.Tests, st.Interval.Prunes, st.Interval.Tests)
	if c.Bool("verbose") {
		for _, line := range e.TAFReport() {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	out := io.Writer(os.Stdout)
	if path := c.String("out"); path != "" {
		fh, err := os.Create(path)
		if err != nil {
			return err
		}
		defer fh.Close()
		out = fh
	}
	if err := writeXYZ(out, p, sols); err != nil {
		return err
	}

	if path := c.String("db"); path != "" {
		if err := soldb.Write(path, sols, st); err != nil {
			return err
		}
	}

	return nil
}

// writeXYZ writes the solution stream in the plain XYZ convention: an atom
// count, a comment line with the solution metrics, then one atom per line.
func writeXYZ(w io.Writer, p *peptide.Peptide, sols []enum.Solution) error {
	for k, s := range sols {
		if _, err := fmt.Fprintf(w, "%d\nsolution %d violations=%d err=%g rmsd_prev=%g\n",
			len(s.Positions), k+1, s.Violations, s.Err, s.RMSDPrev); err != nil {
			return err
		}
		for i, pos := range s.Positions {
			if _, err := fmt.Fprintf(w, "%-4s %14.8f %14.8f %14.8f\n",
				p.Atoms[i].Name, pos.X, pos.Y, pos.Z); err != nil {
				return err
			}
		}
	}

	return nil
}

// convertCommand parses a DMDGP file and rewrites its canonical dump.
func convertCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}

	p, g, err := dmdgp.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	if path := c.String("out"); path != "" {
		return dmdgp.WriteFile(path, p, g)
	}

	return dmdgp.Write(os.Stdout, p, g, c.Args().First())
}
