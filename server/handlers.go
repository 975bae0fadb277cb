package server

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/batch"
	"github.com/brandkit/brandkit/model"
)

// chatSystemPrompt seeds every new chat session.
const chatSystemPrompt = "You are a helpful and creative assistant that helps users generate beautiful images."

// imagePromptPrefix wraps prompts sent to the legacy DALL-E endpoint.
const imagePromptPrefix = "A high-quality, detailed, and photorealistic image of: "

type errorResponse struct {
	Error string `json:"error"`
}

// generateRequest is the wire form of a generation request. The label text
// travels as phone_number, the field name existing clients already send.
type generateRequest struct {
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"system_prompt"`
	Model        string `json:"model"`
	LogoPath     string `json:"logo_path"`
	PhoneNumber  string `json:"phone_number"`
	OutDir       string `json:"out_dir"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError maps client errors onto HTTP status codes: caller mistakes
// are 400s, everything upstream is a 502.
func statusForError(err error) int {
	if ai.IsUserInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing 'prompt' in request"})
		return
	}

	genReq := ai.GenerationRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		OutputDir:    req.OutDir,
		LogoPath:     req.LogoPath,
		LabelText:    req.PhoneNumber,
	}
	if genReq.SystemPrompt == "" {
		genReq.SystemPrompt = batch.DefaultSystemPrompt
	}
	if genReq.OutputDir == "" {
		genReq.OutputDir = s.cfg.OutputDir
	}
	if genReq.LogoPath == "" {
		genReq.LogoPath = s.cfg.LogoPath
	}
	if genReq.LabelText == "" {
		genReq.LabelText = s.cfg.LabelText
	}
	if genReq.Model == "" {
		genReq.Model = s.imageModel.String()
	}

	provider := s.providerFor(genReq.Model)
	start := time.Now()
	path, err := batch.GenerateOne(r.Context(), s.client, genReq)
	generationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		generationsTotal.WithLabelValues(provider, "error").Inc()
		s.logger.Error("generation failed", "prompt", genReq.Prompt, "error", err)
		writeJSON(w, statusForError(err), ai.FailureResult(genReq.Prompt, err))
		return
	}

	generationsTotal.WithLabelValues(provider, "success").Inc()
	writeJSON(w, http.StatusOK, ai.SuccessResult(genReq.Prompt, path, "/outputs/"+filepath.Base(path)))
}

// handleImage is the legacy one-shot endpoint: no branding, no disk write,
// just a hosted DALL-E image URL.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing 'prompt' in request"})
		return
	}

	resp, err := s.client.GenerateImage(r.Context(), imagePromptPrefix+req.Prompt,
		ai.WithImageModel(model.DallE2),
		ai.WithImageSize(ai.ImageSize256x256),
		ai.WithImageCount(1),
		ai.WithImageFormat(ai.ImageFormatURL),
	)
	if err != nil {
		s.logger.Error("image request failed", "error", err)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
		return
	}

	payloads := resp.ImagePayloads()
	if len(payloads) == 0 || payloads[0].URL == "" {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: ai.ErrNoImage.Error()})
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{ImageURL: payloads[0].URL})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing 'message' in request"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.chatTurn(r.Context(), sessionID, req.Message)
	if err != nil {
		s.logger.Error("chat failed", "session_id", sessionID, "error", err)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: reply, SessionID: sessionID})
}

// chatTurn runs one request-response exchange against the session history
// and persists both sides of it.
func (s *Server) chatTurn(ctx context.Context, sessionID, message string) (string, error) {
	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var turn []ai.Message
	if len(history) == 0 {
		turn = append(turn, ai.NewMessage(ai.RoleSystem, chatSystemPrompt))
	}
	turn = append(turn, ai.NewMessage(ai.RoleUser, message))

	resp, err := s.client.Chat(ctx, append(history, turn...),
		ai.WithModel(s.chatModel),
		ai.WithTemperature(0.6),
	)
	if err != nil {
		return "", err
	}
	chatMessagesTotal.Inc()

	turn = append(turn, ai.NewMessage(ai.RoleAssistant, resp.Content))
	if err := s.sessions.Append(ctx, sessionID, turn...); err != nil {
		// The reply already exists; losing one history entry is better
		// than failing the whole exchange.
		s.logger.Warn("session append failed", "session_id", sessionID, "error", err)
	}
	return resp.Content, nil
}

func (s *Server) handleOutputFile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file"]
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.cfg.OutputDir, name))
}

// providerFor resolves a model identifier to its provider name for metric
// labels. Unresolvable identifiers are counted, not dropped.
func (s *Server) providerFor(id string) string {
	if id == "" {
		return s.imageModel.Provider().String()
	}
	if m, err := model.Resolve(id); err == nil {
		return m.Provider().String()
	}
	return "unknown"
}
