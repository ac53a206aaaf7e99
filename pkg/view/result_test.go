package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPopulate_VariablesReplaceOnlyTheBag(t *testing.T) {
	child := New(nil, nil).SetTemplate("partial")
	target := New(map[string]any{"stale": true}, map[string]any{"layout": "admin"})
	target.SetTemplate("existing").SetTerminal(true).AddChild(child)

	if err := Populate(FromVariables(map[string]any{"a": 1, "b": 2}), target); err != nil {
		t.Fatalf("populate: %v", err)
	}

	if diff := cmp.Diff(map[string]any{"a": 1, "b": 2}, target.Variables()); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	if target.Template() != "existing" {
		t.Fatalf("template changed: %q", target.Template())
	}
	if !target.Terminal() {
		t.Fatalf("terminal flag changed")
	}
	if diff := cmp.Diff(map[string]any{"layout": "admin"}, target.Options()); diff != "" {
		t.Fatalf("options changed (-want +got):\n%s", diff)
	}
	if target.Len() != 1 || target.Children()[0] != child {
		t.Fatalf("children changed: %d", target.Len())
	}
}

func TestPopulate_NilResultClearsVariables(t *testing.T) {
	target := New(map[string]any{"stale": true}, nil)

	if err := Populate(nil, target); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if len(target.Variables()) != 0 {
		t.Fatalf("expected empty variables, got %v", target.Variables())
	}
}

func TestPopulate_StructuredViewCopiesFieldsAndAppendsChildren(t *testing.T) {
	c0 := New(nil, nil).SetTemplate("c0")
	c1 := New(nil, nil).SetTemplate("c1")
	c2 := New(nil, nil).SetTemplate("c2")

	target := New(map[string]any{"stale": true}, nil)
	target.AddChild(c0)

	source := New(map[string]any{"x": 1}, map[string]any{"has_parent": true})
	source.SetTemplate("t").SetCaptureTo("sidebar").SetTerminal(true).SetAppend(true)
	source.AddChild(c1).AddChild(c2)

	if err := Populate(FromView(source), target); err != nil {
		t.Fatalf("populate: %v", err)
	}

	if target.Template() != "t" {
		t.Fatalf("template: want t, got %q", target.Template())
	}
	if diff := cmp.Diff(map[string]any{"x": 1}, target.Variables()); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"has_parent": true}, target.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if target.CaptureTo() != "sidebar" || !target.Terminal() || !target.IsAppend() {
		t.Fatalf("flags not copied: capture=%q terminal=%v append=%v", target.CaptureTo(), target.Terminal(), target.IsAppend())
	}

	want := []*ViewModel{c0, c1, c2}
	got := target.Children()
	if len(got) != len(want) {
		t.Fatalf("children: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d: want %q, got %q", i, want[i].Template(), got[i].Template())
		}
	}
}

func TestPopulate_StructuredViewReplacesRatherThanMerges(t *testing.T) {
	target := New(map[string]any{"keep": "no"}, nil)
	source := New(map[string]any{"fresh": "yes"}, nil)

	if err := Populate(ViewResult{View: source}, target); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, ok := target.Variable("keep"); ok {
		t.Fatalf("expected previous variables to be dropped")
	}
}

func TestPopulate_SelfIsNoop(t *testing.T) {
	target := New(map[string]any{"x": 1}, nil)
	target.AddChild(New(nil, nil))

	if err := Populate(FromView(target), target); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if target.Len() != 1 {
		t.Fatalf("expected children untouched, got %d", target.Len())
	}
}

func TestPopulate_Errors(t *testing.T) {
	if err := Populate(FromVariables(nil), nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
	if err := Populate(ViewResult{}, New(nil, nil)); err == nil {
		t.Fatalf("expected error for empty structured result")
	}
}
