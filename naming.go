package brandkit

import (
	"mime"
	"strings"
)

// maxSlugLen bounds slugs so generated filenames stay readable.
const maxSlugLen = 40

// Slugify converts free text into a filesystem-safe identifier: lower-case
// ASCII alphanumerics with single hyphens between runs, no leading or
// trailing hyphens, at most 40 characters. Text with no usable characters
// becomes "prompt".
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "prompt"
	}
	return slug
}

// canonicalExts avoids platform-dependent answers from the system MIME
// tables for the types providers actually return.
var canonicalExts = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtensionForMIME picks a file extension for a declared media type.
// Unknown or empty types fall back to ".png", the pipeline's lossless
// output format.
func ExtensionForMIME(mimeType string) string {
	if mimeType == "" {
		return ".png"
	}
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	if ext, ok := canonicalExts[strings.ToLower(mimeType)]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ".png"
	}
	ext := exts[0]
	if ext == ".jpe" {
		ext = ".jpg"
	}
	return ext
}
