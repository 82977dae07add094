package main

import (
	"github.com/rs/zerolog"

	"benchlab/adapters/fsstore"
	"benchlab/internal/config"
	"benchlab/ui"
)

func newServer(cfg *config.Config, log zerolog.Logger) *ui.Server {
	return ui.NewServer(fsstore.New(cfg.Output.Dir), log)
}
