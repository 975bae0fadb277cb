package batch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator serves canned streams keyed by prompt, one per call in
// order, so retried prompts can see a different stream each attempt.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []string
	streams map[string][]fakeStream
}

type fakeStream struct {
	chunks []ai.ImageChunk
	err    error
}

func (f *fakeGenerator) StreamImage(_ context.Context, prompt string, _ ...ai.ImageOption) (<-chan ai.ImageChunk, error) {
	f.mu.Lock()
	f.calls = append(f.calls, prompt)
	var s fakeStream
	if queue := f.streams[prompt]; len(queue) > 0 {
		s = queue[0]
		f.streams[prompt] = queue[1:]
	}
	f.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	ch := make(chan ai.ImageChunk, len(s.chunks))
	for _, c := range s.chunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}

func pngPayload(t *testing.T) ai.ImagePayload {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 200, 120))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return ai.ImagePayload{Data: buf.Bytes(), MIMEType: "image/png"}
}

// fastRetry keeps batch tests quick.
func fastRetry() *retry.Config {
	return &retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func goodStream(t *testing.T) fakeStream {
	t.Helper()
	return fakeStream{chunks: []ai.ImageChunk{{Payloads: []ai.ImagePayload{pngPayload(t)}}}}
}

func TestRun_WritesBrandedFile(t *testing.T) {
	dir := t.TempDir()
	prompt := "Red shoe on white background"
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		prompt: {goodStream(t)},
	}}

	r := New(gen, Config{OutDir: dir, Prefix: "campaign", LabelText: "555-0100"})
	results := r.Run(context.Background(), []string{prompt})

	require.Len(t, results, 1)
	assert.True(t, results[0].OK())

	want := filepath.Join(dir, "campaign_red-shoe-on-white-background_0.png")
	assert.Equal(t, want, results[0].ImagePath)
	require.FileExists(t, want)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, decoded.Bounds().Dx())
}

func TestRun_FailureIndependence(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"first poster":  {goodStream(t)},
		"second poster": {{err: ai.NewPermanentError("invalid request", 400, nil)}},
		"third poster":  {goodStream(t)},
	}}

	r := New(gen, Config{OutDir: dir, Retry: fastRetry()})
	results := r.Run(context.Background(), []string{"first poster", "second poster", "third poster"})

	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Contains(t, results[1].Error, "invalid request")
	assert.True(t, results[2].OK())

	// Every prompt was attempted despite the middle failure, and the
	// permanent error was not retried.
	assert.Equal(t, []string{"first poster", "second poster", "third poster"}, gen.calls)
}

func TestRun_SkipsBlankPrompts(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"real prompt": {goodStream(t)},
	}}

	r := New(gen, Config{OutDir: dir})
	results := r.Run(context.Background(), []string{"", "   ", "real prompt", "\t"})

	require.Len(t, results, 1)
	assert.Equal(t, "real prompt", results[0].Prompt)
	assert.Equal(t, []string{"real prompt"}, gen.calls)
}

func TestRun_NoImageRecordedAsFailure(t *testing.T) {
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"a poster": {{chunks: []ai.ImageChunk{{Text: "I cannot draw that"}}}},
	}}

	r := New(gen, Config{OutDir: t.TempDir(), Retry: fastRetry()})
	results := r.Run(context.Background(), []string{"a poster"})

	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Equal(t, ai.ErrNoImage.Error(), results[0].Error)

	// An accepted-but-empty response is informational, never retried.
	assert.Len(t, gen.calls, 1)
}

func TestRun_TransientStreamErrorRetried(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"a poster": {
			{chunks: []ai.ImageChunk{
				{Payloads: []ai.ImagePayload{pngPayload(t)}},
				{Err: ai.NewTransientError("stream reset", 503, nil)},
			}},
			goodStream(t),
		},
	}}

	r := New(gen, Config{OutDir: dir, Retry: fastRetry()})
	results := r.Run(context.Background(), []string{"a poster"})

	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
	assert.Equal(t, []string{"a poster", "a poster"}, gen.calls)

	// Only the retried attempt's output lands on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_MidStreamErrorExhaustsRetriesAndLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	broken := fakeStream{chunks: []ai.ImageChunk{
		{Payloads: []ai.ImagePayload{pngPayload(t)}},
		{Err: ai.NewTransientError("stream cut short", 500, nil)},
	}}
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"a poster": {broken, broken, broken},
	}}

	r := New(gen, Config{OutDir: dir, Retry: fastRetry()})
	results := r.Run(context.Background(), []string{"a poster"})

	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Contains(t, results[0].Error, "stream cut short")
	assert.Len(t, gen.calls, 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"a poster": {goodStream(t)},
	}}

	r := New(gen, Config{OutDir: dir})
	results := r.Run(context.Background(), []string{"a poster"})

	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
	assert.DirExists(t, dir)
}

func TestRun_MultiplePayloadsIndexed(t *testing.T) {
	dir := t.TempDir()
	payload := pngPayload(t)
	gen := &fakeGenerator{streams: map[string][]fakeStream{
		"two posters": {{chunks: []ai.ImageChunk{
			{Payloads: []ai.ImagePayload{payload}},
			{Payloads: []ai.ImagePayload{payload}},
		}}},
	}}

	r := New(gen, Config{OutDir: dir, Prefix: "banner"})
	results := r.Run(context.Background(), []string{"two posters"})

	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
	assert.FileExists(t, filepath.Join(dir, "banner_two-posters_0.png"))
	assert.FileExists(t, filepath.Join(dir, "banner_two-posters_1.png"))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{streams: map[string][]fakeStream{}}
	r := New(gen, Config{OutDir: t.TempDir()})
	results := r.Run(ctx, []string{"one", "two"})

	require.Len(t, results, 2)
	assert.False(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Empty(t, gen.calls)
}

func TestReadPromptsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n\n  second  \n\n"), 0o644))

	prompts, err := ReadPromptsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, prompts)

	_, err = ReadPromptsFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDefaultPrompts_Sluggable(t *testing.T) {
	slugPattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	assert.Len(t, DefaultPrompts, 10)
	for _, p := range DefaultPrompts {
		slug := ai.Slugify(p)
		assert.Regexp(t, slugPattern, slug)
		assert.LessOrEqual(t, len(slug), 40)
	}
}
