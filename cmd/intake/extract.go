package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/clearform/intake/internal/config"
	"github.com/clearform/intake/internal/extract"
	"github.com/clearform/intake/internal/ner"
	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/store"
)

func runExtract(args []string) error {
	var (
		file         string
		asJSON       bool
		save         bool
		source       string
		nerModel     string
		nerTokenizer string
		dbPath       string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			asJSON = true
		case "--save":
			save = true
		case "--source":
			i++
			if i >= len(args) {
				return fmt.Errorf("--source requires a value")
			}
			source = args[i]
		case "--ner-model":
			i++
			if i >= len(args) {
				return fmt.Errorf("--ner-model requires a value")
			}
			nerModel = args[i]
		case "--ner-tokenizer":
			i++
			if i >= len(args) {
				return fmt.Errorf("--ner-tokenizer requires a value")
			}
			nerTokenizer = args[i]
		case "--db":
			i++
			if i >= len(args) {
				return fmt.Errorf("--db requires a value")
			}
			dbPath = args[i]
		default:
			if file != "" {
				return fmt.Errorf("unexpected argument: %s", args[i])
			}
			file = args[i]
		}
	}

	if file == "" {
		return fmt.Errorf("usage: intake extract <file> [--json] [--save] [--ner-model <path> --ner-tokenizer <path>] [--db <path>]")
	}

	resolved, err := config.ResolveConfig(config.ResolveOptions{
		CLIDBPath:       dbPath,
		CLINERModel:     nerModel,
		CLINERTokenizer: nerTokenizer,
	})
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	var recognizer ner.Recognizer
	if resolved.NERModelPath.Value != "" && resolved.NERTokenizerPath.Value != "" {
		r := ner.NewONNXRecognizer(resolved.NERModelPath.Value, resolved.NERTokenizerPath.Value)
		defer r.Close()
		recognizer = r
	}

	pipeline, err := extract.NewPipeline(recognizer, nil)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result := pipeline.Run(ctx, string(raw))

	if save {
		if source == "" {
			source = file
		}
		s, err := store.NewStore(resolved.DBPath.Value)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer s.Close()

		rec, err := encodeRecord(source, string(raw), result)
		if err != nil {
			return err
		}
		id, err := s.SaveRecord(ctx, rec)
		if err != nil {
			return fmt.Errorf("saving record: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved record %d\n", id)
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printResult(result)
	return nil
}

// printResult renders the extraction outcome field by field in schema
// order, with confidence alongside.
func printResult(result *extract.Result) {
	flat := profile.Flatten(result.Profile)

	paths := make([]profile.FieldPath, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	if len(paths) == 0 {
		fmt.Println("No fields extracted.")
	}
	for _, path := range paths {
		fmt.Printf("  %-35s %-28s (confidence %.1f)\n", path, flat[path], result.Confidence[path])
	}

	fmt.Println()
	for _, note := range result.Notes {
		fmt.Println(note)
	}
}

func encodeRecord(source, transcriptText string, result *extract.Result) (*store.Record, error) {
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	confidenceJSON, err := json.Marshal(result.Confidence)
	if err != nil {
		return nil, fmt.Errorf("encoding confidence: %w", err)
	}
	return &store.Record{
		Source:         source,
		Transcript:     transcriptText,
		ProfileJSON:    string(profileJSON),
		ConfidenceJSON: string(confidenceJSON),
		Completion:     result.Completion,
	}, nil
}
