// Command storelens-mcp is an MCP stdio bridge to a running storelens
// server, so agent frontends can trigger store audits as tools.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// auditRequest mirrors the storelens API request model.
type auditRequest struct {
	URL     string `json:"url"`
	Persona string `json:"persona,omitempty"`
}

// exportRequest mirrors the storelens export API request model.
type exportRequest struct {
	URL     string `json:"url"`
	Persona string `json:"persona,omitempty"`
	Format  string `json:"format,omitempty"`
}

func main() {
	apiURL := os.Getenv("STORELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("STORELENS_API_KEY")

	s := server.NewMCPServer(
		"storelens",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	auditTool := mcp.NewTool("audit_store",
		mcp.WithDescription("Audit an online store's landing page: fetches the page, extracts its content, and returns a structured critique with a 1-10 score, per-area sections, and quick-win recommendations."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The store URL to audit (scheme optional, https assumed)"),
		),
		mcp.WithString("persona",
			mcp.Description("Reviewer voice: 'cro' (default, conversion consultant) or 'brand' (brand/design critic)"),
			mcp.Enum("cro", "brand"),
		),
	)
	s.AddTool(auditTool, handleAudit(apiURL, apiKey))

	exportTool := mcp.NewTool("export_audit",
		mcp.WithDescription("Audit an online store and return the report as a document file (DOCX or PDF), base64-encoded."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The store URL to audit"),
		),
		mcp.WithString("format",
			mcp.Description("Document format: 'docx' (default) or 'pdf'"),
			mcp.Enum("docx", "pdf"),
		),
	)
	s.AddTool(exportTool, handleExport(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleAudit(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		persona := request.GetString("persona", "")

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/audit", auditRequest{
			URL:     url,
			Persona: persona,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(respBody)), nil
	}
}

func handleExport(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		format := request.GetString("format", "docx")

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/audit/export", exportRequest{
			URL:    url,
			Format: format,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Errors come back as JSON; documents come back as raw bytes.
		if bytes.HasPrefix(bytes.TrimSpace(respBody), []byte("{")) {
			return mcp.NewToolResultText(string(respBody)), nil
		}

		return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(respBody)), nil
	}
}

// apiPost sends a POST request to the storelens API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
