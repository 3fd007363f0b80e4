package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vhsmock/pkg/inventory"
	"vhsmock/pkg/psdoc"
)

// inventory --source <mockup dir> --output <json>: walk every document
// and report smart objects and key layers.
func inventoryCmd() *cobra.Command {
	var (
		source      string
		output      string
		annotateDir string
	)
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Export a smart-object and key-layer inventory as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(source); err != nil {
				return fmt.Errorf("mockup directory not found: %s", source)
			}

			entries, err := inventory.Collect(source)
			if err != nil {
				return err
			}
			if err := inventory.Write(output, entries); err != nil {
				return err
			}
			log.Info("wrote inventory", "path", output, "documents", len(entries))

			if annotateDir == "" {
				return nil
			}
			if err := os.MkdirAll(annotateDir, 0o755); err != nil {
				return err
			}
			for _, entry := range entries {
				doc, err := psdoc.Open(entry.File)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(entry.Name, filepath.Ext(entry.Name)) + "-layers.png"
				dst := filepath.Join(annotateDir, name)
				if err := inventory.Annotate(doc, entry, dst); err != nil {
					return err
				}
				log.Info("wrote annotated overview", "path", dst)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", `path to the "Black VHS Case - Mockup" directory`)
	cmd.Flags().StringVar(&output, "output", "docs/black-vhs-case-mockup-inventory.json", "output JSON path")
	cmd.Flags().StringVar(&annotateDir, "annotate-dir", "", "also write per-document PNGs with key-layer boxes outlined")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}
