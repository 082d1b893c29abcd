package main

import (
	"fmt"

	"github.com/clearform/intake/internal/config"
	"github.com/clearform/intake/internal/extract"
	intakemcp "github.com/clearform/intake/internal/mcp"
	"github.com/clearform/intake/internal/ner"
	"github.com/clearform/intake/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

func runMCP(args []string) error {
	var (
		dbPath       string
		nerModel     string
		nerTokenizer string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--db":
			i++
			if i >= len(args) {
				return fmt.Errorf("--db requires a value")
			}
			dbPath = args[i]
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
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	resolved, err := config.ResolveConfig(config.ResolveOptions{
		CLIDBPath:       dbPath,
		CLINERModel:     nerModel,
		CLINERTokenizer: nerTokenizer,
	})
	if err != nil {
		return err
	}

	s, err := store.NewStore(resolved.DBPath.Value)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

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

	srv := intakemcp.NewServer(intakemcp.ServerConfig{
		Store:    s,
		Pipeline: pipeline,
		Version:  version,
	})

	return server.ServeStdio(srv)
}
