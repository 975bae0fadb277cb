package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/brandkit/brandkit"
)

type fakeGenerator struct {
	prompts []string
	resp    *ai.ImageResponse
	err     error
}

func (f *fakeGenerator) GenerateImage(_ context.Context, prompt string, _ ...ai.ImageOption) (*ai.ImageResponse, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	for i := range img.Pix {
		img.Pix[i] = 0xc0
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateTool(t *testing.T) {
	t.Run("saves a branded image and reports the path", func(t *testing.T) {
		dir := t.TempDir()
		gen := &fakeGenerator{
			resp: &ai.ImageResponse{Payloads: []ai.ImagePayload{{Data: pngBytes(t), MIMEType: "image/png"}}},
		}
		handler := generateHandler(gen, Defaults{OutputDir: dir, LabelText: "555-0100"})

		res, err := handler(context.Background(), callReq("generate_image", map[string]any{
			"prompt": "A red shoe on white background",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var result ai.GenerationResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.True(t, result.Success)
		assert.FileExists(t, result.ImagePath)
		assert.Equal(t, dir, filepath.Dir(result.ImagePath))

		require.Len(t, gen.prompts, 1)
		assert.Equal(t, "A red shoe on white background", gen.prompts[0])
	})

	t.Run("missing prompt is a tool error", func(t *testing.T) {
		handler := generateHandler(&fakeGenerator{}, Defaults{})

		res, err := handler(context.Background(), callReq("generate_image", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("generator failure is a tool error", func(t *testing.T) {
		gen := &fakeGenerator{err: ai.NewTransientError("rate limited", 429, nil)}
		handler := generateHandler(gen, Defaults{OutputDir: t.TempDir()})

		res, err := handler(context.Background(), callReq("generate_image", map[string]any{
			"prompt": "poster",
		}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "rate limited")
	})
}

func TestBrandTool(t *testing.T) {
	t.Run("writes a branded copy next to the original", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "poster.png")
		require.NoError(t, os.WriteFile(src, pngBytes(t), 0o644))

		handler := brandHandler(Defaults{})
		res, err := handler(context.Background(), callReq("brand_image", map[string]any{
			"image_path": src,
			"label_text": "555-0100",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		out := resultText(t, res)
		assert.Equal(t, filepath.Join(dir, "poster_branded.png"), out)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		_, format, err := image.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("empty overlay is a tool error", func(t *testing.T) {
		handler := brandHandler(Defaults{})

		res, err := handler(context.Background(), callReq("brand_image", map[string]any{
			"image_path": "whatever.png",
		}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "nothing to stamp")
	})

	t.Run("missing file is a tool error", func(t *testing.T) {
		handler := brandHandler(Defaults{})

		res, err := handler(context.Background(), callReq("brand_image", map[string]any{
			"image_path": filepath.Join(t.TempDir(), "missing.png"),
			"label_text": "555-0100",
		}))
		require.NoError(t, err)
		require.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "read image")
	})

	t.Run("server defaults apply when the request omits branding", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "poster.png")
		require.NoError(t, os.WriteFile(src, pngBytes(t), 0o644))

		handler := brandHandler(Defaults{LabelText: "555-0199"})
		res, err := handler(context.Background(), callReq("brand_image", map[string]any{
			"image_path": src,
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.FileExists(t, filepath.Join(dir, "poster_branded.png"))
	})
}

func TestBrandedPath(t *testing.T) {
	assert.Equal(t, "a/b/poster_branded.png", brandedPath("a/b/poster.jpg"))
	assert.Equal(t, "image_branded.png", brandedPath("image.png"))
	assert.Equal(t, "noext_branded.png", brandedPath("noext"))
}

func TestNewServer(t *testing.T) {
	s := NewServer(&fakeGenerator{}, Defaults{}, WithName("test-server"), WithVersion("2.0.0"))
	assert.NotNil(t, s)
}
