package imagegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
	resp      *genai.GenerateContentResponse
	err       error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), " ", "", nil); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("NewGemini error = %v, want ErrNoAPIKey", err)
	}
}

func TestGemini_ReturnsFirstInlineImage(t *testing.T) {
	models := &fakeModels{resp: imageResponse(
		&genai.Part{Text: "here you go"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png!")}},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
	)}
	g := newGemini(models, "", nil)

	uri, err := g.Generate(context.Background(), "Bayam", "Kaya zat besi")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if uri != "data:image/png;base64,cG5nIQ==" {
		t.Fatalf("uri = %q", uri)
	}
	if models.gotModel != DefaultModel {
		t.Fatalf("model = %q, want %q", models.gotModel, DefaultModel)
	}
	if models.gotPrompt != Prompt("Bayam", "Kaya zat besi") {
		t.Fatalf("prompt = %q", models.gotPrompt)
	}
	if models.gotConfig == nil || models.gotConfig.ImageConfig == nil || models.gotConfig.ImageConfig.AspectRatio != "4:3" {
		t.Fatalf("config = %#v, want 4:3 aspect ratio", models.gotConfig)
	}
}

func TestGemini_NoImageAndErrors(t *testing.T) {
	g := newGemini(&fakeModels{resp: imageResponse(&genai.Part{Text: "sorry"})}, "m", nil)
	if _, err := g.Generate(context.Background(), "a", "b"); !errors.Is(err, ErrNoImage) {
		t.Fatalf("text-only response error = %v, want ErrNoImage", err)
	}

	g = newGemini(&fakeModels{resp: &genai.GenerateContentResponse{}}, "m", nil)
	if _, err := g.Generate(context.Background(), "a", "b"); !errors.Is(err, ErrNoImage) {
		t.Fatalf("empty response error = %v, want ErrNoImage", err)
	}

	boom := errors.New("quota")
	g = newGemini(&fakeModels{err: boom}, "m", nil)
	if _, err := g.Generate(context.Background(), "a", "b"); !errors.Is(err, boom) {
		t.Fatalf("API error = %v, want wrapped quota", err)
	}
}

func TestPrompt(t *testing.T) {
	got := Prompt("Telur", "Protein")
	if !strings.HasPrefix(got, "High quality professional food photography of Telur, Protein.") {
		t.Fatalf("Prompt = %q", got)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "a.png")
	// PNG signature is enough for content sniffing.
	if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	uri, err := FromFile(png)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri = %q, want png data uri", uri)
	}

	txt := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := FromFile(txt); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("FromFile(txt) error = %v, want ErrNotAnImage", err)
	}

	if _, err := FromFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("FromFile(missing) returned nil error")
	}
}
