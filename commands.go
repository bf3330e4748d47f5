package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"proofdiff/internal/backend"
	"proofdiff/internal/config"
	"proofdiff/internal/ingest"
	"proofdiff/internal/render"
	"proofdiff/internal/report"
	"proofdiff/internal/server"
	"proofdiff/internal/session"
	"proofdiff/internal/tui/util"
)

/* ---------- compare ---------- */

type compareFlags struct {
	format string
	output string
	width  int
}

func compareCmd() *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "Compare two documents once and print the highlighted result",
		Long: `compare loads both documents through the configured backend, compares
their normalized text and writes the result as highlighted terminal text
(ansi), marked plain text (text), a standalone HTML page (html) or the raw
comparison response (json). The HTML page also shows each original text,
punctuation included, with the same highlights.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "ansi", "output format: ansi|text|html|json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().IntVar(&f.width, "width", 0, "wrap ansi output at this many cells (0: no wrap)")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string, f compareFlags) error {
	format := strings.ToLower(f.format)
	switch format {
	case "ansi", "text", "html", "json":
	default:
		return fmt.Errorf("unknown format %q (want ansi, text, html or json)", f.format)
	}

	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	be, release, err := a.openBackend(ctx)
	if err != nil {
		return err
	}
	defer release()

	in := ingest.New(be, a.log.Logger)
	orch := a.orchestrator(be)
	var names, originals [2]string
	for i, path := range args {
		out, err := in.Path(ctx, i+1, path)
		if err != nil {
			return err
		}
		if _, err := orch.Loaded(i+1, session.Slot{
			SourceName:     out.SourceName,
			OriginalText:   out.OriginalText,
			NormalizedText: out.NormalizedText,
		}); err != nil {
			return err
		}
		names[i] = out.SourceName
		originals[i] = out.OriginalText
	}
	res, err := orch.Compare(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		fh, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer fh.Close()
		w = fh
	}

	rep := report.New(names[0], names[1], a.cfg.Diff.Engine, res).WithOriginals(res, originals[0], originals[1])
	switch format {
	case "html":
		err = rep.WriteHTML(w)
	case "text":
		err = rep.WriteText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(backend.CompareResponse{Success: true, Diffs1: res.Left, Diffs2: res.Right})
	default:
		st := render.DefaultStyles()
		if util.NoColor(a.cfg.UI.NoColor) {
			st = render.MonoStyles()
		}
		err = rep.WriteANSI(w, st, f.width)
	}
	if err != nil {
		return err
	}
	if f.output != "" {
		a.log.Info().Str("file", f.output).Str("format", format).Msg("report written")
	}
	return nil
}

/* ---------- serve ---------- */

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the load/compare HTTP API",
		Long: `serve exposes POST /api/load_file and POST /api/compare backed by the
in-process loader and diff engine, plus GET /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(true)
			if err != nil {
				return err
			}
			defer a.close()
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			be, err := a.local()
			if err != nil {
				return err
			}
			srv := server.New(be, int64(a.cfg.Server.MaxBodyMB)<<20, a.log.Logger)
			a.log.Info().Str("addr", addr).Str("engine", be.Engine().Name()).Msg("serving")
			return srv.Serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8765)")
	return cmd
}

/* ---------- init ---------- */

func initCmd() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.UserPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine the user config directory; pass --path")
			}
			c := config.Default()
			if err := config.Save(path, &c, force); err != nil {
				if config.IsExist(err) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "where to write (default: user config dir)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
