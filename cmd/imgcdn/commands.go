package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imgcdn-mcp/internal/cdnurl"
	"github.com/ironsheep/imgcdn-mcp/internal/preview"
	"github.com/ironsheep/imgcdn-mcp/internal/server"
)

func newURLCmd(a *app) *cobra.Command {
	var of optionFlags
	cmd := &cobra.Command{
		Use:   "url NAME...",
		Short: "Print the delivery URL for each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := of.build()
			if err != nil {
				return err
			}
			r, err := a.resource()
			if err != nil {
				return err
			}
			urls, err := r.URLs(args, opts)
			if err != nil {
				return err
			}
			for _, u := range urls {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
	of.register(cmd)
	return cmd
}

func newTransformCmd(_ *app) *cobra.Command {
	var of optionFlags
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Print the compiled transformation path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := of.build()
			if err != nil {
				return err
			}
			path, err := cdnurl.CompileSegments(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	of.register(cmd)
	return cmd
}

func newNameCmd(_ *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "name NAME",
		Short: "Print the name as it appears in a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cdnurl.NormalizeName(args[0], format))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "target extension, e.g. jpg")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		of      optionFlags
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "preview PATH",
		Short: "Apply the options to a local image and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := of.build()
			if err != nil {
				return err
			}
			out, err := preview.File(preview.NewImageCache(), args[0], opts)
			if err != nil {
				return err
			}
			for _, s := range out.Skipped {
				a.logger.Warn("not reproduced", "param", s)
			}
			res, err := out.Save(outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d %s\n", res.OutputPath, res.Width, res.Height, res.Format)
			return nil
		},
	}
	of.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "file to write the preview to")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

// runServe starts the MCP server. A missing cloud name is not fatal since
// callers may pass cloud_name per call.
func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	r, err := a.resource()
	if err != nil {
		a.logger.Warn("no default cloud", "err", err)
	}

	a.logger.Info("starting MCP server", "version", Version, "cloud_name", a.cfg.CloudName)
	srv := server.New(r,
		server.WithLogger(a.logger.WithPrefix("mcp")),
		server.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
	)
	return srv.Run()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Configuration is not needed to report the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "imgcdn %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(w, "  URL scheme: %s\n", cdnurl.Version)
		},
	}
}
