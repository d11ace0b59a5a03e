// Package imagegen produces product images as data URIs, either generated by a Gemini
// image model or read from a local file.
package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash-image"
	aspectRatio  = "4:3"
	maxFileBytes = 5 << 20
)

var (
	ErrNoAPIKey   = errors.New("image generation needs an API key (set GEMINI_API_KEY)")
	ErrNoImage    = errors.New("model returned no image")
	ErrNotAnImage = errors.New("file is not an image")
)

// Generator creates an image for a product.
type Generator interface {
	Generate(ctx context.Context, name, description string) (string, error)
}

// contentModel is the part of *genai.Models used here.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Generator = (*Gemini)(nil)

// Gemini generates images with the Gemini API.
type Gemini struct {
	models contentModel
	model  string
	logger *zap.Logger
}

// NewGemini creates a generator. An empty apiKey returns ErrNoAPIKey.
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, model, logger), nil
}

func newGemini(models contentModel, model string, logger *zap.Logger) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{models: models, model: model, logger: logger.With(zap.String("component", "imagegen"))}
}

// Prompt is the text sent to the image model.
func Prompt(name, description string) string {
	return fmt.Sprintf("High quality professional food photography of %s, %s. Professional lighting, appetizing, depth of field.", name, description)
}

// Generate returns the first inline image of the model response as a data URI.
func (g *Gemini) Generate(ctx context.Context, name, description string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(Prompt(name, description), genai.RoleUser),
	}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: aspectRatio},
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if resp == nil {
		return "", ErrNoImage
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			g.logger.Info("image generated", zap.String("product", name), zap.Int("bytes", len(part.InlineData.Data)))
			return DataURI(mime, part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FromFile reads a local image and returns it as a data URI. The type is sniffed
// from the content.
func FromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if info.Size() > maxFileBytes {
		return "", fmt.Errorf("image %s is larger than %d bytes", path, maxFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s (%s)", ErrNotAnImage, path, mime)
	}
	return DataURI(mime, data), nil
}
