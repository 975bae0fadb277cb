// Package mcp exposes the generation pipeline over the Model Context
// Protocol, so MCP clients like Claude Desktop can produce branded images
// directly.
//
// Two tools are served:
//
//   - generate_image: run the full pipeline for one prompt and save the
//     branded result to disk.
//   - brand_image: stamp brand elements onto an image file that already
//     exists.
//
// The server speaks stdio, the standard transport for MCP servers invoked
// as subprocesses:
//
//	gen := client.New(client.Config{...})
//	if err := mcp.ServeStdio(gen, mcp.Defaults{LogoPath: "logo.png"}); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/batch"
	"github.com/brandkit/brandkit/compose"
)

// Defaults fill in request fields the MCP client leaves empty.
type Defaults struct {
	OutputDir string
	LogoPath  string
	LabelText string
	Model     string
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server wired to the given image generator.
func NewServer(gen batch.ImageGenerator, defaults Defaults, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "brandkit-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(generateTool(), generateHandler(gen, defaults))
	s.AddTool(brandTool(), brandHandler(defaults))
	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
func ServeStdio(gen batch.ImageGenerator, defaults Defaults, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(gen, defaults, opts...))
}

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_image",
		mcp.WithDescription("Generate a marketing image from a prompt, stamp brand elements onto it, and save it to disk. Returns the generation result as JSON."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What the image should show")),
		mcp.WithString("system_prompt", mcp.Description("Style guidance for the generation; defaults to the built-in marketing template")),
		mcp.WithString("model", mcp.Description("Image model identifier, for example dall-e-3")),
		mcp.WithString("logo_path", mcp.Description("Logo file stamped into the bottom-right corner")),
		mcp.WithString("label_text", mcp.Description("Contact line drawn in the bottom-left corner")),
		mcp.WithString("out_dir", mcp.Description("Directory the image is saved to")),
	)
}

func generateHandler(gen batch.ImageGenerator, defaults Defaults) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := req.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		genReq := ai.GenerationRequest{
			Prompt:       prompt,
			SystemPrompt: req.GetString("system_prompt", batch.DefaultSystemPrompt),
			Model:        req.GetString("model", defaults.Model),
			OutputDir:    req.GetString("out_dir", defaults.OutputDir),
			LogoPath:     req.GetString("logo_path", defaults.LogoPath),
			LabelText:    req.GetString("label_text", defaults.LabelText),
		}

		path, err := batch.GenerateOne(ctx, gen, genReq)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(ai.SuccessResult(prompt, path, ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func brandTool() mcp.Tool {
	return mcp.NewTool("brand_image",
		mcp.WithDescription("Stamp a logo and contact label onto an existing image file. Writes a _branded copy next to the original and returns its path."),
		mcp.WithString("image_path", mcp.Required(), mcp.Description("Image file to stamp")),
		mcp.WithString("logo_path", mcp.Description("Logo file for the bottom-right corner")),
		mcp.WithString("label_text", mcp.Description("Contact line for the bottom-left corner")),
	)
}

func brandHandler(defaults Defaults) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		imagePath, err := req.RequireString("image_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		overlay := compose.Overlay{
			LogoPath: req.GetString("logo_path", defaults.LogoPath),
			Label:    req.GetString("label_text", defaults.LabelText),
		}
		if overlay.Empty() {
			return mcp.NewToolResultError("nothing to stamp: provide logo_path or label_text"), nil
		}

		data, err := os.ReadFile(imagePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read image: %v", err)), nil
		}

		out := brandedPath(imagePath)
		if err := os.WriteFile(out, overlay.Apply(data), 0o644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("write image: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// brandedPath puts the stamped copy next to the original:
// poster.jpg becomes poster_branded.png.
func brandedPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_branded.png"
}
