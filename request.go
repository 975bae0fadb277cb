package brandkit

// GenerationRequest describes one branded-image generation job. Construct it
// once per prompt and treat it as read-only; nothing in the pipeline mutates
// a request after creation.
type GenerationRequest struct {
	// Prompt is the image description sent to the provider.
	Prompt string `json:"prompt"`
	// SystemPrompt carries optional style or brand guidance.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Model is the raw model identifier; empty selects the default.
	Model string `json:"model,omitempty"`
	// OutputDir is where the finished image is written.
	OutputDir string `json:"out_dir,omitempty"`
	// LogoPath points at a logo to stamp onto the image; empty skips the logo.
	LogoPath string `json:"logo_path,omitempty"`
	// LabelText is a contact line drawn onto the image; empty skips the label.
	LabelText string `json:"label_text,omitempty"`
}

// GenerationResult records the outcome of one generation job. Build results
// through SuccessResult and FailureResult so every result carries exactly
// one of an image path or an error, never both and never neither.
type GenerationResult struct {
	Success   bool   `json:"success"`
	Prompt    string `json:"prompt,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SuccessResult builds a successful result for the given prompt. The URL is
// optional; file-only callers leave it empty.
func SuccessResult(prompt, imagePath, imageURL string) GenerationResult {
	return GenerationResult{
		Success:   true,
		Prompt:    prompt,
		ImagePath: imagePath,
		ImageURL:  imageURL,
	}
}

// FailureResult builds a failed result carrying the error's message.
func FailureResult(prompt string, err error) GenerationResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return GenerationResult{
		Success: false,
		Prompt:  prompt,
		Error:   msg,
	}
}

// OK reports whether the result represents a successful generation.
func (r GenerationResult) OK() bool { return r.Success }
