package main

import (
	"context"
	"fmt"
	"os"

	"github.com/clearform/intake/internal/config"
	"github.com/clearform/intake/internal/formfill"
	"github.com/clearform/intake/internal/store"
)

func runMappings(args []string) error {
	sub := "list"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return mappingsList(args)
	case "save":
		return mappingsSave(args)
	case "delete":
		return mappingsDelete(args)
	default:
		return fmt.Errorf("unknown mappings subcommand: %s", sub)
	}
}

func openStoreFromFlags(args []string) (store.Store, []string, error) {
	var dbPath string
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "--db" {
			i++
			if i >= len(args) {
				return nil, nil, fmt.Errorf("--db requires a value")
			}
			dbPath = args[i]
			continue
		}
		rest = append(rest, args[i])
	}

	resolved, err := config.ResolveConfig(config.ResolveOptions{CLIDBPath: dbPath})
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewStore(resolved.DBPath.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return s, rest, nil
}

func mappingsList(args []string) error {
	s, _, err := openStoreFromFlags(args)
	if err != nil {
		return err
	}
	defer s.Close()

	mappings, err := s.ListMappings(context.Background())
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		fmt.Println("No mappings saved. Use intake mappings save <name> <file>.")
		return nil
	}

	fmt.Printf("  %-20s %-8s %s\n", "NAME", "FIELDS", "UPDATED")
	for _, m := range mappings {
		fields := 0
		if set, err := formfill.ParseMappingSet(m.Spec); err == nil {
			fields = len(set.Fields)
		}
		fmt.Printf("  %-20s %-8d %s\n", m.Name, fields, m.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func mappingsSave(args []string) error {
	s, rest, err := openStoreFromFlags(args)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(rest) != 2 {
		return fmt.Errorf("usage: intake mappings save <name> <file> [--db <path>]")
	}
	name, file := rest[0], rest[1]

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading mapping file: %w", err)
	}
	set, err := formfill.ParseMappingSet(string(raw))
	if err != nil {
		return err
	}
	set.Name = name
	encoded, err := set.Encode()
	if err != nil {
		return err
	}

	if err := s.SaveMapping(context.Background(), &store.Mapping{Name: name, Spec: encoded}); err != nil {
		return err
	}
	fmt.Printf("Saved mapping %q (%d fields)\n", name, len(set.Fields))
	return nil
}

func mappingsDelete(args []string) error {
	s, rest, err := openStoreFromFlags(args)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(rest) != 1 {
		return fmt.Errorf("usage: intake mappings delete <name> [--db <path>]")
	}
	if err := s.DeleteMapping(context.Background(), rest[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted mapping %q\n", rest[0])
	return nil
}
