package generator

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestScriptedReturnsRecommendationsJSON(t *testing.T) {
	t.Parallel()
	gen := NewScripted()

	prompt := `List career paths. Return only valid JSON like {"recommendations": [...]}`
	out, err := gen.Generate(context.Background(), prompt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var env struct {
		Recommendations []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(env.Recommendations) == 0 {
		t.Fatal("expected scripted recommendations")
	}
	for _, rec := range env.Recommendations {
		if rec.ID == "" || rec.Title == "" {
			t.Errorf("incomplete recommendation %+v", rec)
		}
	}
}

func TestScriptedReturnsRoadmapJSON(t *testing.T) {
	t.Parallel()
	gen := NewScripted()

	prompt := `Build a roadmap. Return only valid JSON with a "careerPath" field.`
	out, err := gen.Generate(context.Background(), prompt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var rm struct {
		CareerPath string `json:"careerPath"`
		Phases     []struct {
			Name string `json:"name"`
		} `json:"phases"`
	}
	if err := json.Unmarshal([]byte(out), &rm); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rm.CareerPath == "" || len(rm.Phases) == 0 {
		t.Errorf("incomplete roadmap: path=%q phases=%d", rm.CareerPath, len(rm.Phases))
	}
}

func TestScriptedChatRepliesAreKeyed(t *testing.T) {
	t.Parallel()
	gen := NewScripted()
	ctx := context.Background()

	salary, err := gen.Generate(ctx, "User asks: what salary should I expect?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(salary), "compensation") {
		t.Errorf("expected a salary-oriented reply, got %q", salary)
	}

	generic, err := gen.Generate(ctx, "User asks: am I on the right track?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if generic == "" {
		t.Error("expected a non-empty fallback reply")
	}
	if generic == salary {
		t.Error("expected keyed replies to differ from the fallback")
	}
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	gen := Func(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})
	out, err := gen.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "echo: hello" {
		t.Errorf("unexpected output %q", out)
	}
}
