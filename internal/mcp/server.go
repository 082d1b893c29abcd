// Package mcp provides a Model Context Protocol server for intake.
//
// It exposes transcript extraction, stored records, and mapping templates
// as MCP tools, and the most recent extraction records as an MCP resource.
// Stdio transport only.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clearform/intake/internal/extract"
	"github.com/clearform/intake/internal/formfill"
	"github.com/clearform/intake/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store    store.Store
	Pipeline *extract.Pipeline
	Version  string
}

// dbMu serializes all MCP tool calls that touch the database.
// The mcp-go library dispatches handlers concurrently via goroutines;
// SQLite supports only one writer at a time.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all intake tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Intake",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerExtractTool(s, cfg.Pipeline, cfg.Store)
	registerRecordsTool(s, cfg.Store)
	registerFillTool(s, cfg.Store)
	registerMappingSaveTool(s, cfg.Store)
	registerMappingListTool(s, cfg.Store)

	registerRecentResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerExtractTool(s *server.MCPServer, pipeline *extract.Pipeline, st store.Store) {
	tool := mcp.NewTool("intake_extract",
		mcp.WithDescription("Extract a structured client profile from an advisor/client meeting transcript. Returns the profile, per-field confidence scores, and completion notes."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("transcript",
			mcp.Required(),
			mcp.Description("Raw transcript text with speaker-labeled lines"),
		),
		mcp.WithString("source",
			mcp.Description("Transcript origin label (e.g. filename). Defaults to 'mcp-extract'."),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the extraction result as a record (default: false)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		transcriptText, err := req.RequireString("transcript")
		if err != nil {
			return mcp.NewToolResultError("transcript is required"), nil
		}

		source := "mcp-extract"
		if v, err := req.RequireString("source"); err == nil && v != "" {
			source = v
		}

		save := false
		if v, err := req.RequireString("save"); err == nil && v == "true" {
			save = true
		}

		result := pipeline.Run(ctx, transcriptText)

		out := map[string]interface{}{
			"profile":    result.Profile,
			"confidence": result.Confidence,
			"completion": result.Completion,
			"notes":      result.Notes,
		}

		if save && st != nil {
			rec, err := recordFromResult(source, transcriptText, result)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("encoding record: %v", err)), nil
			}
			id, err := st.SaveRecord(ctx, rec)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("saving record: %v", err)), nil
			}
			out["record_id"] = id
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerRecordsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("intake_records",
		mcp.WithDescription("List stored extraction records, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return (default: 20, max: 100)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		opts := store.ListOpts{Limit: 20}
		if limitVal, err := req.RequireFloat("limit"); err == nil {
			limit := int(limitVal)
			if limit > 100 {
				limit = 100
			}
			if limit > 0 {
				opts.Limit = limit
			}
		}

		records, err := st.ListRecords(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing records: %v", err)), nil
		}

		type recordSummary struct {
			ID         int64   `json:"id"`
			Source     string  `json:"source"`
			Completion float64 `json:"completion"`
			CreatedAt  string  `json:"created_at"`
		}
		summaries := make([]recordSummary, 0, len(records))
		for _, r := range records {
			summaries = append(summaries, recordSummary{
				ID:         r.ID,
				Source:     r.Source,
				Completion: r.Completion,
				CreatedAt:  r.CreatedAt.Format(time.RFC3339),
			})
		}

		data, _ := json.MarshalIndent(summaries, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerFillTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("intake_fill",
		mcp.WithDescription("Render a stored extraction record through a named mapping template, producing destination-field values for a form."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("record_id",
			mcp.Required(),
			mcp.Description("Extraction record ID"),
		),
		mcp.WithString("mapping",
			mcp.Required(),
			mcp.Description("Name of a stored mapping template"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		idVal, err := req.RequireFloat("record_id")
		if err != nil {
			return mcp.NewToolResultError("record_id is required"), nil
		}
		mappingName, err := req.RequireString("mapping")
		if err != nil {
			return mcp.NewToolResultError("mapping is required"), nil
		}

		rec, err := st.GetRecord(ctx, int64(idVal))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("record: %v", err)), nil
		}
		m, err := st.GetMapping(ctx, mappingName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("mapping: %v", err)), nil
		}

		values, err := fillRecord(rec, m.Spec)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("filling: %v", err)), nil
		}

		data, _ := json.MarshalIndent(values, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerMappingSaveTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("intake_mapping_save",
		mcp.WithDescription("Save or update a named form-fill mapping template. The spec is a JSON document: {\"fields\": [{\"profile_path\": \"personal.first_name\", \"destination\": \"FirstName\", \"transform\": \"title_case\"}]}"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Template name"),
		),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("Mapping document as a JSON string"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		name, err := req.RequireString("name")
		if err != nil || strings.TrimSpace(name) == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		spec, err := req.RequireString("spec")
		if err != nil {
			return mcp.NewToolResultError("spec is required"), nil
		}

		set, err := formfill.ParseMappingSet(spec)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mapping: %v", err)), nil
		}
		set.Name = name
		encoded, err := set.Encode()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding mapping: %v", err)), nil
		}

		if err := st.SaveMapping(ctx, &store.Mapping{Name: name, Spec: encoded}); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("saving mapping: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Saved mapping %q (%d fields)", name, len(set.Fields))), nil
	})
}

func registerMappingListTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("intake_mapping_list",
		mcp.WithDescription("List stored form-fill mapping templates."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		mappings, err := st.ListMappings(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing mappings: %v", err)), nil
		}
		if len(mappings) == 0 {
			return mcp.NewToolResultText("No mappings saved. Use intake_mapping_save to create one."), nil
		}

		type mappingSummary struct {
			Name      string `json:"name"`
			Fields    int    `json:"fields"`
			UpdatedAt string `json:"updated_at"`
		}
		summaries := make([]mappingSummary, 0, len(mappings))
		for _, m := range mappings {
			fields := 0
			if set, err := formfill.ParseMappingSet(m.Spec); err == nil {
				fields = len(set.Fields)
			}
			summaries = append(summaries, mappingSummary{
				Name:      m.Name,
				Fields:    fields,
				UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
			})
		}

		data, _ := json.MarshalIndent(summaries, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerRecentResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"intake://recent",
		"Recent Extractions",
		mcp.WithResourceDescription("The 20 most recent extraction records with completion percentages."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		records, err := st.ListRecords(ctx, store.ListOpts{Limit: 20})
		if err != nil {
			return nil, fmt.Errorf("listing recent records: %w", err)
		}

		type recentRecord struct {
			ID         int64   `json:"id"`
			Source     string  `json:"source"`
			Completion float64 `json:"completion"`
			Snippet    string  `json:"snippet"`
			CreatedAt  string  `json:"created_at"`
		}
		recent := make([]recentRecord, 0, len(records))
		for _, r := range records {
			snippet := r.Transcript
			if len(snippet) > 200 {
				snippet = snippet[:200] + "..."
			}
			recent = append(recent, recentRecord{
				ID:         r.ID,
				Source:     r.Source,
				Completion: r.Completion,
				Snippet:    snippet,
				CreatedAt:  r.CreatedAt.Format(time.RFC3339),
			})
		}

		data, _ := json.MarshalIndent(recent, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
