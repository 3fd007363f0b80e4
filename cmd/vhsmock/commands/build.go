package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vhsmock/pkg/psdoc"
	"vhsmock/pkg/template"
)

// build --psb <front.psb> --output <dir>: extract template assets.
func buildCmd() *cobra.Command {
	var (
		psbPath      string
		outputDir    string
		publicPrefix string
		webpQuality  float32
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract runtime template assets from a FRONT mockup PSB",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(psbPath); err != nil {
				return fmt.Errorf("PSB file not found: %s", psbPath)
			}

			doc, err := psdoc.Open(psbPath)
			if err != nil {
				return err
			}

			meta, err := template.Build(doc, template.Options{
				OutputDir:    outputDir,
				PublicPrefix: publicPrefix,
				WebPQuality:  webpQuality,
			})
			if err != nil {
				return err
			}

			log.Info("built template assets",
				"dir", outputDir,
				"canvas", fmt.Sprintf("%dx%d", meta.Output.Width, meta.Output.Height))
			return nil
		},
	}
	cmd.Flags().StringVar(&psbPath, "psb", "", "path to the Black VHS FRONT PSB")
	cmd.Flags().StringVar(&outputDir, "output", "public/VHS/templates/black-case-front", "output directory for exported assets")
	cmd.Flags().StringVar(&publicPrefix, "public-prefix", "/VHS/templates/black-case-front", "public asset path prefix recorded in the manifest")
	cmd.Flags().Float32Var(&webpQuality, "webp-quality", 86, "lossy quality for the cover webp")
	_ = cmd.MarkFlagRequired("psb")
	return cmd
}
