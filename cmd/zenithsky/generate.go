package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/catalog"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		opts    catalog.Options
		out     string
		format  string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a payload from the bright-star catalogue around a zenith",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := catalog.Default().Generate(opts)
			if err != nil {
				return err
			}

			f := world.Format(format)
			if out != "" && !cmd.Flags().Changed("format") {
				if f, err = world.FormatFromPath(out); err != nil {
					return err
				}
			}
			data, err := world.EncodePayload(p, f)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}

			if out == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write payload: %w", err)
			}
			a.log.Info("payload generated",
				zap.Int("objects", len(p.Objects)),
				zap.String("out", out),
				zap.String("format", string(f)))

			if summary {
				writeSkyTable(cmd.ErrOrStderr(), world.Normalize(p, a.log))
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&opts.ZenithRA, "ra", 0, "zenith right ascension in degrees")
	fl.Float64Var(&opts.ZenithDec, "dec", 0, "zenith declination in degrees")
	fl.StringVar(&opts.ZenithStar, "zenith", "", "zenith star name (default nearest catalogue star)")
	fl.IntVar(&opts.Count, "count", catalog.DefaultCount, "stars to keep")
	fl.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	fl.StringVar(&format, "format", string(world.FormatJSON), "payload format: json, yaml or toml")
	fl.BoolVar(&summary, "summary", false, "print a table of the generated sky to stderr")
	_ = cmd.MarkFlagRequired("ra")
	_ = cmd.MarkFlagRequired("dec")
	return cmd
}
