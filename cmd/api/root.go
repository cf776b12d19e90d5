package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"fileshelf/internal/config"
	"fileshelf/internal/database"
	"fileshelf/internal/domain/upload"
	"fileshelf/internal/logging"
)

// flagOverrides carries command-line values that win over the environment.
type flagOverrides struct {
	addr        string
	uploadDir   string
	databaseURL string
}

func (f *flagOverrides) apply(cfg *config.Config) error {
	if f.addr != "" {
		cfg.HTTPAddr = f.addr
	}
	if f.uploadDir != "" {
		cfg.UploadDir = f.uploadDir
	}
	if f.databaseURL != "" {
		cfg.DatabaseURL = f.databaseURL
	}
	return cfg.Finalize()
}

func newRootCmd() *cobra.Command {
	flags := &flagOverrides{}

	root := &cobra.Command{
		Use:           "fileshelf",
		Short:         "File upload service: blobs on disk, metadata in SQL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.databaseURL, "database-url", "", "database DSN (overrides DATABASE_URL)")
	root.PersistentFlags().StringVar(&flags.uploadDir, "upload-dir", "", "upload directory (overrides UPLOAD_DIR)")

	serve := newServeCmd(flags)
	serve.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides HTTP_ADDR)")

	root.AddCommand(serve, newProvisionCmd(flags), newAuditCmd(flags))
	return root
}

// bootstrap loads config, builds the logger and provisions the database.
func bootstrap(cmd *cobra.Command, flags *flagOverrides) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := flags.apply(cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return nil, err
	}

	osFs := afero.NewOsFs()
	prov := database.NewProvisioner(osFs, logger.BaseLogger())
	db, err := prov.Provision(cmd.Context(), cfg.DatabaseURL, &upload.File{})
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	service := upload.NewService(
		upload.NewRepository(db),
		upload.NewBlobDirectory(osFs),
		logger.BaseLogger(),
		upload.Options{
			Extensions:      upload.NewExtensions(cfg.AllowedExtensions...),
			ValidateReplace: cfg.ValidateReplaceType,
		},
	)

	return &app{cfg: cfg, logger: logger, db: db, files: service}, nil
}
