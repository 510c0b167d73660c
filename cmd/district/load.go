package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/district"
	"github.com/natevvv/osm-district-roads/internal/store"
)

var (
	loadInput string
	loadDB    string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Store an upload payload in the SQLite database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f, err := os.Open(loadInput)
		if err != nil {
			return eris.Wrapf(err, "load: open %s", loadInput)
		}
		defer f.Close()
		u, err := district.ReadUpload(f)
		if err != nil {
			return err
		}

		path := loadDB
		if path == "" {
			path = cfg.Store.Path
		}
		s, err := store.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.Close(); err != nil {
				zap.L().Warn("close store", zap.Error(err))
			}
		}()
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		id, err := s.SaveUpload(ctx, u)
		if err != nil {
			return err
		}
		zap.L().Info("loaded district", zap.String("db", path), zap.Int64("district_id", id))
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadInput, "input", "i", "district_upload.json", "upload payload")
	loadCmd.Flags().StringVar(&loadDB, "db", "", "SQLite database (default from config)")
	rootCmd.AddCommand(loadCmd)
}
