package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuditCmd(flags *flagOverrides) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report blobs without rows and rows without blobs. Changes nothing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.files.Audit(cmd.Context(), a.cfg.UploadDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range report.OrphanBlobs {
				fmt.Fprintf(out, "orphan-blob\t%s\n", path)
			}
			for _, f := range report.MissingBlobs {
				fmt.Fprintf(out, "missing-blob\t%d\t%s\n", f.ID, f.FilePath)
			}
			a.logger.Info("audit completed", "orphan_blobs", len(report.OrphanBlobs), "missing_blobs", len(report.MissingBlobs))

			if strict && !report.Clean() {
				return fmt.Errorf("store inconsistent: %d orphan blobs, %d missing blobs",
					len(report.OrphanBlobs), len(report.MissingBlobs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any inconsistency is found")
	return cmd
}
