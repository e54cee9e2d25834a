package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	mapping_service "github.com/init-pkg/menu-import/internal/app/mapping/general"
	menu_catalog "github.com/init-pkg/menu-import/internal/app/menu-import/catalog"
	"github.com/init-pkg/menu-import/internal/config"
	"github.com/init-pkg/menu-import/internal/database"
	"github.com/init-pkg/menu-import/internal/logging"
)

func main() {
	branch := flag.String("branch", "", "branch id to seed categories for")
	categories := flag.String("categories", "", "comma separated category names")
	flag.Parse()

	var (
		cfg = config.MustLoad()
		log = logging.New(cfg.Log.Level, !cfg.IsLocal())
	)

	if err := database.Migrate(cfg.Infrastructure.Db); err != nil {
		log.Error("migrate", "err", err)
		os.Exit(1)
	}
	log.Info("database migrated", "driver", cfg.Infrastructure.Db.Driver)

	labels := splitLabels(*categories)
	if *branch == "" || len(labels) == 0 {
		return
	}

	db, err := database.Open(cfg.Infrastructure.Db)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}

	gate := mapping_service.New(log, menu_catalog.New(db))
	ids, err := gate.Resolve(context.Background(), *branch, labels)
	if err != nil {
		log.Error("seed categories", "err", err)
		os.Exit(1)
	}
	for _, label := range labels {
		log.Info("category seeded", slog.String("branch", *branch), slog.String("name", label), slog.String("id", ids[label]))
	}
}

func splitLabels(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
