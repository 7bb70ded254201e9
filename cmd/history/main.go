package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"homework_bot/internal/storage"
)

func main() {
	dbPath := flag.String("db", envOrDefault("HISTORY_DB_PATH", "./data/history.db"), "path to sqlite database")
	limit := flag.Int("n", 20, "number of cycles to show")
	flag.Parse()

	store, err := storage.NewSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open history database: %v", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), *limit)
	if err != nil {
		log.Fatalf("list cycles: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tFROM\tTO\tOUTCOME\tNOTIFIED\tMESSAGE")
	for _, e := range entries {
		outcome := string(e.Outcome)
		if e.Failure != "" {
			outcome += "/" + string(e.Failure)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.CursorBefore, e.CursorAfter, outcome, e.Notified, e.Message)
	}
	_ = w.Flush()
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
