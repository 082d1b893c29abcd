package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/clearform/intake/internal/config"
	"github.com/clearform/intake/internal/extract"
	"github.com/clearform/intake/internal/formfill"
	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/store"
)

func runFill(args []string) error {
	var (
		target      string
		mappingName string
		dbPath      string
		asJSON      bool
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mapping":
			i++
			if i >= len(args) {
				return fmt.Errorf("--mapping requires a value")
			}
			mappingName = args[i]
		case "--db":
			i++
			if i >= len(args) {
				return fmt.Errorf("--db requires a value")
			}
			dbPath = args[i]
		case "--json":
			asJSON = true
		default:
			if target != "" {
				return fmt.Errorf("unexpected argument: %s", args[i])
			}
			target = args[i]
		}
	}

	if target == "" || mappingName == "" {
		return fmt.Errorf("usage: intake fill <record-id|file> --mapping <name> [--db <path>] [--json]")
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

	ctx := context.Background()

	m, err := s.GetMapping(ctx, mappingName)
	if err != nil {
		return err
	}
	set, err := formfill.ParseMappingSet(m.Spec)
	if err != nil {
		return err
	}

	p, err := loadProfile(ctx, s, target)
	if err != nil {
		return err
	}

	values := formfill.Fill(p, set)

	if asJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding values: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(values) == 0 {
		fmt.Println("No destination fields filled.")
		return nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-30s %s\n", name, values[name])
	}
	return nil
}

// loadProfile resolves the fill target: a numeric record id loads a stored
// record, anything else is treated as a transcript file to extract fresh.
func loadProfile(ctx context.Context, s store.Store, target string) (*profile.ClientProfile, error) {
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		rec, err := s.GetRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		var p profile.ClientProfile
		if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
			return nil, fmt.Errorf("decoding stored profile: %w", err)
		}
		return &p, nil
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	pipeline, err := extract.NewPipeline(nil, nil)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx, string(raw)).Profile, nil
}
