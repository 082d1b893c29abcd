package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clearform/intake/internal/config"
	"github.com/clearform/intake/internal/store"
)

func runRecords(args []string) error {
	var (
		dbPath string
		limit  = 20
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--db":
			i++
			if i >= len(args) {
				return fmt.Errorf("--db requires a value")
			}
			dbPath = args[i]
		case "--limit":
			i++
			if i >= len(args) {
				return fmt.Errorf("--limit requires a value")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid --limit: %s", args[i])
			}
			limit = n
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	resolved, err := config.ResolveConfig(config.ResolveOptions{CLIDBPath: dbPath})
	if err != nil {
		return err
	}

	s, err := store.NewStore(resolved.DBPath.Value)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	records, err := s.ListRecords(context.Background(), store.ListOpts{Limit: limit})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No records stored. Run intake extract --save first.")
		return nil
	}

	fmt.Printf("  %-6s %-30s %-12s %s\n", "ID", "SOURCE", "COMPLETION", "CREATED")
	for _, r := range records {
		fmt.Printf("  %-6d %-30s %10.1f%%  %s\n",
			r.ID, truncate(r.Source, 30), r.Completion, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
