package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getAlby/votehub.go/db"
	"github.com/getAlby/votehub.go/lib"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getAlby/votehub.go/lib/service"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the subset of the server configuration this tool needs.
type Config struct {
	DatabaseUri             string `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int    `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int    `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatadogAgentUrl         string `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string `envconfig:"LOG_FILE_PATH"`
}

// script to export the registry state, or to verify an exported snapshot.
// It never writes to the database.
func main() {
	verifyPath := flag.String("verify", "", "verify the snapshot file at this path instead of exporting")
	outPath := flag.String("out", "", "write the snapshot to this file instead of STDOUT")
	flag.Parse()

	if *verifyPath != "" {
		if err := verify(*verifyPath); err != nil {
			log.Fatalf("Snapshot %s is invalid: %v", *verifyPath, err)
		}
		return
	}

	c := &Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// logs go to STDERR or the log file, STDOUT carries the snapshot
	logger := lib.Logger(c.LogFilePath)
	if c.LogFilePath == "" {
		logger.SetOutput(os.Stderr)
	}

	dbConn, err := db.Open(&service.Config{
		DatabaseUri:             c.DatabaseUri,
		DatabaseMaxConns:        c.DatabaseMaxConns,
		DatabaseMaxIdleConns:    c.DatabaseMaxIdleConns,
		DatabaseConnMaxLifetime: c.DatabaseConnMaxLifetime,
		DatadogAgentUrl:         c.DatadogAgentUrl,
	})
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	reg, err := service.NewBunStore(dbConn).LoadReadOnly(ctx)
	if err != nil {
		logger.Fatalf("Error loading registry: %v", err)
	}

	out := os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			logger.Fatal(err)
		}
		defer file.Close()
		out = file
	}
	if err = registry.EncodeSnapshot(out, reg.Snapshot()); err != nil {
		logger.Fatalf("Error writing snapshot: %v", err)
	}
	logger.Infof("Exported %d events", reg.EventCount())
}

// verify decodes the file and restores a registry from it.
func verify(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	snapshot, err := registry.DecodeSnapshot(file)
	if err != nil {
		return err
	}
	reg, err := registry.FromSnapshot(snapshot)
	if err != nil {
		return err
	}
	votes := int64(0)
	for _, e := range reg.ListEvents() {
		votes += e.TotalVotes
	}
	fmt.Printf("snapshot ok: version %d, owner %s, %d events, %d votes\n", snapshot.Version, reg.Owner(), reg.EventCount(), votes)
	return nil
}
