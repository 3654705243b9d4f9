package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/coffeetier/pkg/errors"
	tierio "github.com/matzehuels/coffeetier/pkg/io"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// execute runs the root command with args and returns its error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(ctx)
}

// writeDraft stores a draft with one coffee per category, leaving out skip.
func writeDraft(t *testing.T, name string, skip ...tier.Category) string {
	t.Helper()
	d := tier.NewDraft()
	d.Name = "Ada"
	for _, c := range tier.Categories() {
		if len(skip) > 0 && skip[0] == c {
			continue
		}
		_ = d.Set(c, 1, "Kenya AA")
	}
	_ = d.Set(tier.S, 2, "Geisha")

	path := filepath.Join(t.TempDir(), name)
	if err := tierio.WriteFile(path, d); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("%s is not a PNG: %v", path, err)
	}
}

func TestRenderCommand(t *testing.T) {
	for _, name := range []string{"draft.toml", "draft.yaml", "draft.json"} {
		t.Run(name, func(t *testing.T) {
			draft := writeDraft(t, name)
			out := filepath.Join(t.TempDir(), "report.png")
			if err := execute(t, "render", draft, "-o", out); err != nil {
				t.Fatalf("render: %v", err)
			}
			assertPNG(t, out)
		})
	}
}

func TestRenderCommandCancelled(t *testing.T) {
	draft := writeDraft(t, "draft.toml")
	out := filepath.Join(t.TempDir(), "report.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executeContext(t, ctx, "render", draft, "-o", out)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("render error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written after cancellation: stat err = %v", err)
	}
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	draft := writeDraft(t, "draft.toml")
	dir := t.TempDir()
	t.Chdir(dir)

	if err := execute(t, "render", draft); err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPNG(t, filepath.Join(dir, "Ada_coffee_tier_list_2024.png"))
}

func TestRenderCommandIncomplete(t *testing.T) {
	draft := writeDraft(t, "draft.toml", tier.D)
	out := filepath.Join(t.TempDir(), "report.png")

	err := execute(t, "render", draft, "-o", out)
	if !errors.Is(err, errors.ErrCodeIncomplete) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeIncomplete)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("an image was written for an incomplete draft")
	}
}

func TestRenderCommandUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("name = 'Ada'"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "render", path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestTableCommand(t *testing.T) {
	draft := writeDraft(t, "draft.toml")

	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
	}{
		{"custom rows", []string{"Kenya AA", "Geisha", "--label", "Espresso", "--color", "#BAE1FF"}, ""},
		{"named colour", []string{"Sidamo", "--color", "thistle"}, ""},
		{"no rows", []string{"--label", "Empty"}, ""},
		{"category from draft", []string{"--category", "s", draft}, ""},
		{"unknown category", []string{"--category", "Z", draft}, errors.ErrCodeInvalidCategory},
		{"category without file", []string{"--category", "S"}, errors.ErrCodeInvalidInput},
		{"bad colour", []string{"Sidamo", "--color", "#12"}, errors.ErrCodeInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "table.png")
			err := execute(t, append([]string{"table", "-o", out}, tt.args...)...)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("table: %v", err)
			}
			assertPNG(t, out)
		})
	}
}

func TestPreviewCommand(t *testing.T) {
	if err := execute(t, "preview", writeDraft(t, "draft.yaml")); err != nil {
		t.Errorf("preview: %v", err)
	}
	err := execute(t, "preview", writeDraft(t, "draft.yaml", tier.E))
	if !errors.Is(err, errors.ErrCodeIncomplete) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeIncomplete)
	}
}

func TestRenderPreviewColumns(t *testing.T) {
	draft := writeDraftValue()
	tables, err := New(io.Discard, LogInfo).newRunner(renderFlags{}).Preview(context.Background(), draft)
	if err != nil {
		t.Fatal(err)
	}
	out := renderPreview(tables)
	for _, want := range []string{"S Tier", "E Tier", "S Coffees", "Geisha"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview lacks %q", want)
		}
	}
	// S and C start on the same line: they head the two columns.
	first := strings.SplitN(out, "\n", 2)[0]
	if !strings.Contains(first, "S Tier") || !strings.Contains(first, "C Tier") {
		t.Errorf("first line %q should head both columns", first)
	}
}

func writeDraftValue() *tier.Draft {
	d := tier.NewDraft()
	d.Name = "Ada"
	for _, c := range tier.Categories() {
		_ = d.Set(c, 1, "Geisha")
	}
	return d
}

// stubForm replaces the interactive form with scripted key presses.
func stubForm(t *testing.T, keys ...tea.Msg) {
	t.Helper()
	orig := runForm
	runForm = func(_ context.Context, m FormModel) (FormModel, error) {
		return send(m, keys...), nil
	}
	t.Cleanup(func() { runForm = orig })
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	orig := confirm
	confirm = func(string, bool) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { confirm = orig })
	return &calls
}

// completeKeys fills the name and the first slot of every category.
func completeKeys(name string) []tea.Msg {
	keys := []tea.Msg{key(name)}
	for range tier.Categories() {
		keys = append(keys, key("tab"), key("Kenya AA"))
		for i := 1; i < tier.Ranks; i++ {
			keys = append(keys, key("tab"))
		}
	}
	return append(keys, key("ctrl+s"))
}

func TestFillCommand(t *testing.T) {
	stubForm(t, key("Ada"), key("tab"), key("Geisha"), key("ctrl+s"))
	calls := stubConfirm(t, true)
	path := filepath.Join(t.TempDir(), "mine.yaml")

	if err := execute(t, "fill", "-o", path); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if *calls != 0 {
		t.Error("confirmation asked for a new file")
	}
	d, err := tierio.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Ada" || d.Get(tier.S, 1) != "Geisha" {
		t.Errorf("saved draft = %+v", d)
	}
}

func TestFillCommandOverwrite(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		answer    bool
		wantName  string
		wantCalls int
	}{
		{"declined", false, false, "Ada", 1},
		{"confirmed", false, true, "AdaGrace", 1},
		{"forced", true, false, "AdaGrace", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDraft(t, "draft.toml")
			// The form starts from the saved draft, so typing appends.
			stubForm(t, key("Grace"), key("ctrl+s"))
			calls := stubConfirm(t, tt.answer)

			args := []string{"fill", "-o", path}
			if tt.force {
				args = append(args, "--force")
			}
			if err := execute(t, args...); err != nil {
				t.Fatalf("fill: %v", err)
			}
			if *calls != tt.wantCalls {
				t.Errorf("confirm calls = %d, want %d", *calls, tt.wantCalls)
			}
			d, err := tierio.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if d.Name != tt.wantName {
				t.Errorf("name = %q, want %q", d.Name, tt.wantName)
			}
		})
	}
}

func TestFillCommandCancelled(t *testing.T) {
	stubForm(t, key("Ada"), key("esc"))
	path := filepath.Join(t.TempDir(), "draft.toml")

	if err := execute(t, "fill", "-o", path); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("a cancelled form wrote a draft")
	}
}

func TestFillCommandRender(t *testing.T) {
	stubForm(t, completeKeys("Ada")...)
	dir := t.TempDir()
	t.Chdir(dir)

	if err := execute(t, "fill", "-o", "draft.json", "--render"); err != nil {
		t.Fatalf("fill --render: %v", err)
	}
	assertPNG(t, filepath.Join(dir, "Ada_coffee_tier_list_2024.png"))
}

func TestLoadServeConfig(t *testing.T) {
	cfg, err := loadServeConfig(serveOpts{addr: ":9090"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	path := filepath.Join(t.TempDir(), "coffeetier.toml")
	if err := os.WriteFile(path, []byte("[session]\nbackend = \"carrier-pigeon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadServeConfig(serveOpts{configPath: path}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "coffeetier") {
		t.Error("completion script does not mention the binary")
	}
}
