package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"fileshelf/internal/domain/auth"
	"fileshelf/internal/domain/upload"
	"fileshelf/internal/server"
)

func newServeCmd(flags *flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Provision the database and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.AppEnv != "dev" {
				gin.SetMode(gin.ReleaseMode)
			}

			verifier, err := auth.NewStaticVerifier(a.cfg.LoginUsername, a.cfg.LoginPassword)
			if err != nil {
				return err
			}

			log := a.logger.BaseLogger()
			router := server.NewRouter(server.Deps{
				Files:          upload.NewHandler(a.files, a.cfg.UploadDir, a.cfg.MaxUploadBytes(), log),
				Auth:           auth.NewHandler(verifier, log),
				Logger:         log,
				CORSOrigins:    a.cfg.CORSOrigins(),
				MaxUploadBytes: a.cfg.MaxUploadBytes(),
			})

			return server.New(a.cfg.HTTPAddr, router, log, a.cfg.ShutdownTimeout).Run(cmd.Context())
		},
	}
}
