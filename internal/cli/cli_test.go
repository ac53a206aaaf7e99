package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

type stubPrompter struct {
	choice  string
	err     error
	offered []string
}

func (s *stubPrompter) Select(_ context.Context, _ string, options []string) (string, error) {
	s.offered = append([]string(nil), options...)
	return s.choice, s.err
}

func execute(t *testing.T, prompter Prompter, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WFVIEW_LOG_LEVEL", "off")

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(Deps{Out: &out, Err: &errOut, Prompter: prompter})
	base := []string{
		"--options", filepath.Join("testdata", "handlers.yaml"),
		"--templates", filepath.Join("testdata", "templates"),
	}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_HTMLWithTemplate(t *testing.T) {
	out, err := execute(t, nil, "render", "approve", "--data", filepath.Join("testdata", "approve.yaml"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<h1>Approve order</h1><p>A-100</p>"
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in output, got %q", want, out)
	}
}

func TestRender_TerminalViewSkipsLayout(t *testing.T) {
	out, err := execute(t, nil, "render", "approve", "--layout", "layout",
		"--data", filepath.Join("testdata", "approve.yaml"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<main>") {
		t.Fatalf("terminal view should not be wrapped in the layout: %q", out)
	}
}

func TestRender_JSON(t *testing.T) {
	out, err := execute(t, nil, "render", "approve", "--json", "--data", filepath.Join("testdata", "approve.yaml"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := map[string]any{"title": "Approve order", "order": "A-100"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PromptsForHandler(t *testing.T) {
	prompter := &stubPrompter{choice: "approve"}
	if _, err := execute(t, prompter, "render", "--json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"approve", "inbox"}, prompter.offered); diff != "" {
		t.Fatalf("offered handlers mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PromptAborted(t *testing.T) {
	prompter := &stubPrompter{err: ErrAborted}
	_, err := execute(t, prompter, "render")
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_UnknownHandler(t *testing.T) {
	if _, err := execute(t, nil, "render", "missing", "--json"); err == nil {
		t.Fatalf("expected error for unknown handler")
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "approve.html")
	out, err := execute(t, nil, "render", "approve", "--output", path,
		"--data", filepath.Join("testdata", "approve.yaml"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "A-100") {
		t.Fatalf("unexpected output file contents: %q", data)
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, nil, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"approve", "inbox", "(no template)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted")
	}
	other := errors.New("boom")
	if translateSurveyErr(other) != other {
		t.Fatalf("other errors should pass through")
	}
}

func TestRender_GoTemplateEngine(t *testing.T) {
	out, err := execute(t, nil, "render", "approve", "--engine", "go-template",
		"--data", filepath.Join("testdata", "approve.yaml"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1>Approve order</h1>") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRender_UnknownEngine(t *testing.T) {
	if _, err := execute(t, nil, "render", "approve", "--engine", "mustache"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestRender_ThemeManifest(t *testing.T) {
	cases := map[string]string{
		"":     `<h1 class="acme">Approve order</h1>`,
		"dark": `<h1 class="acme dark">Approve order</h1>`,
	}
	for variant, want := range cases {
		t.Run("variant="+variant, func(t *testing.T) {
			out, err := execute(t, nil, "render", "approve",
				"--theme-manifest", filepath.Join("testdata", "theme.yaml"),
				"--variant", variant,
				"--data", filepath.Join("testdata", "approve.yaml"))
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in output, got %q", want, out)
			}
		})
	}
}

func TestRender_MissingThemeManifest(t *testing.T) {
	_, err := execute(t, nil, "render", "approve", "--theme-manifest", filepath.Join("testdata", "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing theme manifest")
	}
}
