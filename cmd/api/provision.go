package main

import (
	"github.com/spf13/cobra"
)

func newProvisionCmd(flags *flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the database if missing and migrate the schema, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.files.EnsureUploadDir(a.cfg.UploadDir); err != nil {
				return err
			}
			a.logger.Info("provisioning completed", "database", a.cfg.DatabaseURL, "upload_dir", a.cfg.UploadDir)
			return nil
		},
	}
}
