package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vhsmock/pkg/poster"
	"vhsmock/pkg/proto"
	"vhsmock/pkg/psdoc"
)

// proto --psb <front.psb> --poster <url|path> --out <dir>: render blend
// variant previews without the original design tool.
func protoCmd() *cobra.Command {
	var opts proto.Options
	var psbPath, posterSrc string
	cmd := &cobra.Command{
		Use:   "proto",
		Short: "Render poster-compositing prototypes from a FRONT mockup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(psbPath); err != nil {
				return fmt.Errorf("PSB file not found: %s", psbPath)
			}

			doc, err := psdoc.Open(psbPath)
			if err != nil {
				return err
			}
			posterImg, err := poster.Load(posterSrc)
			if err != nil {
				return err
			}

			result, err := proto.Run(doc, posterImg, opts)
			if err != nil {
				return err
			}

			log.Info("wrote prototypes",
				"dir", opts.OutDir,
				"designBBox", result.DesignBBox.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&psbPath, "psb", "", "path to the Black VHS FRONT PSB")
	cmd.Flags().StringVar(&posterSrc, "poster", "", "poster image URL or local path")
	cmd.Flags().StringVar(&opts.OutDir, "out", "docs/references/black-vhs-prototypes", "output directory")
	cmd.Flags().StringVar(&opts.DesignLayer, "design", proto.DefaultDesignLayer, "exact design layer name")
	cmd.Flags().StringVar(&opts.BackgroundLayer, "background", proto.DefaultBackgroundLayer, "exact background layer name")
	cmd.Flags().Float64Var(&opts.MultiplyMix, "multiply-mix", 0.82, "mix factor for the multiply variant")
	cmd.Flags().Float64Var(&opts.ScreenMix, "screen-mix", 0.38, "mix factor for the screen variant")
	_ = cmd.MarkFlagRequired("psb")
	_ = cmd.MarkFlagRequired("poster")
	return cmd
}
