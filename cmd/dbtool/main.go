package main

import (
	"carp-solver/internal/adapters/instancefile"
	"carp-solver/internal/adapters/repositories"
	"carp-solver/internal/config"
	"carp-solver/internal/platform/db"
	"carp-solver/internal/platform/obs"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const usage = `usage:
  dbtool import <instance.dat>...   store instances (replacing same-named ones)
  dbtool list                       list stored instances
  dbtool export <name>              print a stored instance in .dat format`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := obs.SetupLogging(obs.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	repo := repositories.NewPostgresInstanceRepository(conn)

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "import":
		if len(args) == 0 {
			log.Fatal("import: at least one instance file is required")
		}
		n, err := repositories.SeedFromDat(ctx, repo, args)
		if err != nil {
			log.Fatalf("import failed after %d instances: %v", n, err)
		}
		log.Infof("Imported %d instances.", n)

	case "list":
		items, err := repo.ListInstances(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, it := range items {
			fmt.Printf("%s\tvertices=%d\tvehicles=%d\tcapacity=%d\trequired=%d\n",
				it.Name, it.Vertices, it.Vehicles, it.Capacity, it.RequiredEdges)
		}

	case "export":
		if len(args) != 1 {
			log.Fatal("export: exactly one instance name is required")
		}
		in, err := repo.GetInstance(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		if err := instancefile.Write(os.Stdout, in); err != nil {
			log.Fatal(err)
		}

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
