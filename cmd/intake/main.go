package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "extract":
		if err := runExtract(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "fill":
		if err := runFill(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "records":
		if err := runRecords(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mappings":
		if err := runMappings(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("intake %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`intake %s - KYC client-profile extraction from advisor transcripts

Usage:
  intake <command> [arguments]

Commands:
  extract <file>      Extract a client profile from a transcript file
  fill <record-id>    Render a stored record through a mapping template
  records             List stored extraction records
  mappings            List or save form-fill mapping templates
  mcp                 Run the MCP server over stdio
  version             Print version

Extract Flags:
  --json              Print the full result as JSON
  --save              Persist the result as a record
  --source <label>    Origin label for saved records (default: file path)
  --ner-model <path>  ONNX NER model for entity seeding
  --ner-tokenizer <path>
                      tokenizer.json matching the NER model
  --db <path>         Database path (default: %s)

Fill Flags:
  --mapping <name>    Stored mapping template to apply (required)
  --json              Print destination values as JSON

Mappings:
  intake mappings                    List templates
  intake mappings save <name> <file> Save a template from a JSON document
  intake mappings delete <name>      Delete a template

Config:
  Settings resolve config file < environment < flags.
  File: ~/.intake/config.yaml   Env: INTAKE_DB, INTAKE_NER_MODEL,
  INTAKE_NER_TOKENIZER
`, version, "~/.intake/intake.db")
}
