// Package brandkit generates marketing images with hosted AI models and
// stamps them with brand elements (a logo and a contact label).
//
// Prompts are forwarded to a generative image API (Google Gemini, OpenAI),
// the returned payloads are composited with branding, and the finished
// images are written to disk. Transient provider failures are retried with
// bounded exponential backoff; branding failures degrade gracefully and
// never lose a generated image.
//
// # Core Interfaces
//
// The root package defines the provider interfaces and shared types:
//
//   - [ChatProvider]: conversations with a chat model (full and streaming)
//   - [ImageProvider]: single-shot image generation
//   - [ImageStreamer]: image generation delivered as a stream of chunks
//
// Both image response shapes ([ImageResponse] and [ImageChunk]) implement
// [PayloadCarrier], so callers extract images the same way regardless of
// which shape a provider returns.
//
// Use the [github.com/brandkit/brandkit/client] package as the entry point
// for provider access and retry handling, the
// [github.com/brandkit/brandkit/model] package for model selection, and the
// [github.com/brandkit/brandkit/batch] package to run prompt batches.
//
// # Basic Usage
//
// Generate one branded image:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Google: os.Getenv("GOOGLE_API_KEY")},
//	})
//
//	resp, err := c.GenerateImage(ctx, "studio photo of a red sneaker",
//	    brandkit.WithImageModel(model.DefaultImageModel))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	overlay := compose.Overlay{LogoPath: "logo.png", Label: "555-0100"}
//	for i, p := range resp.ImagePayloads() {
//	    name := fmt.Sprintf("shoe_%d%s", i, brandkit.ExtensionForMIME(p.MIMEType))
//	    os.WriteFile(name, overlay.Apply(p.Data), 0o644)
//	}
//
// # Batch Generation
//
// Run a whole campaign with one call:
//
//	runner := batch.New(c, batch.Config{
//	    OutDir:    "outputs",
//	    Prefix:    "campaign",
//	    LogoPath:  "logo.png",
//	    LabelText: "555-0100",
//	})
//	results := runner.Run(ctx, batch.DefaultPrompts)
//
// Each prompt succeeds or fails independently; results report one entry per
// non-blank prompt.
//
// # Error Handling
//
// Provider errors are categorized ([ErrorTransient], [ErrorPermanent],
// [ErrorUserInput]) at the provider boundary. Transient errors are retried
// by the client; authentication failures surface immediately. A call that
// succeeds without producing an image reports [ErrNoImage].
package brandkit
