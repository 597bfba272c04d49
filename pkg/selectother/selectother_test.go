package selectother_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webform/pkg/callbacks"
	"github.com/goliatone/go-webform/pkg/renderarray"
	"github.com/goliatone/go-webform/pkg/selectother"
)

func TestRelocateError_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		input renderarray.Node
		want  renderarray.Node
	}{
		{
			name: "select flag moves to parent",
			input: renderarray.Node{
				"select": renderarray.Node{"errorNoMessage": true, "label": "x"},
			},
			want: renderarray.Node{
				"select":         renderarray.Node{"label": "x"},
				"errorNoMessage": true,
			},
		},
		{
			name:  "empty node",
			input: renderarray.Node{},
			want:  renderarray.Node{"errorNoMessage": true},
		},
		{
			name: "false flag on select is removed",
			input: renderarray.Node{
				"select": map[string]any{"errorNoMessage": false},
			},
			want: renderarray.Node{
				"select":         map[string]any{},
				"errorNoMessage": true,
			},
		},
		{
			name: "parent false flag is overwritten",
			input: renderarray.Node{
				"errorNoMessage": false,
				"title":          "Colour",
			},
			want: renderarray.Node{
				"errorNoMessage": true,
				"title":          "Colour",
			},
		},
		{
			name: "scalar select is left untouched",
			input: renderarray.Node{
				"select": "errorNoMessage",
			},
			want: renderarray.Node{
				"select":         "errorNoMessage",
				"errorNoMessage": true,
			},
		},
		{
			name: "nil select is left untouched",
			input: renderarray.Node{
				"select": nil,
			},
			want: renderarray.Node{
				"select":         nil,
				"errorNoMessage": true,
			},
		},
		{
			name: "list select is left untouched",
			input: renderarray.Node{
				"select": []any{"errorNoMessage", map[string]any{"errorNoMessage": true}},
			},
			want: renderarray.Node{
				"select":         []any{"errorNoMessage", map[string]any{"errorNoMessage": true}},
				"errorNoMessage": true,
			},
		},
		{
			name: "other child keeps its flag",
			input: renderarray.Node{
				"select": renderarray.Node{"errorNoMessage": true},
				"other":  renderarray.Node{"errorNoMessage": true},
			},
			want: renderarray.Node{
				"select":         renderarray.Node{},
				"other":          renderarray.Node{"errorNoMessage": true},
				"errorNoMessage": true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := selectother.RelocateError(tc.input)
			if err != nil {
				t.Fatalf("RelocateError: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("node mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRelocateError_MutatesInPlace(t *testing.T) {
	node := renderarray.Node{"select": renderarray.Node{"errorNoMessage": true}}

	got, err := selectother.RelocateError(node)
	if err != nil {
		t.Fatalf("RelocateError: %v", err)
	}
	got["marker"] = 1
	if _, ok := node["marker"]; !ok {
		t.Fatalf("expected returned node to alias the input")
	}
	if !node.Bool("errorNoMessage") {
		t.Fatalf("expected input node to carry errorNoMessage")
	}
}

func TestRelocateError_Idempotent(t *testing.T) {
	once := renderarray.Node{
		"select": renderarray.Node{"errorNoMessage": true, "options": renderarray.Node{"a": "A"}},
		"title":  "Colour",
	}
	twice := once.Clone()

	if _, err := selectother.RelocateError(once); err != nil {
		t.Fatalf("first call: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := selectother.RelocateError(twice); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("repeated call changed result (-once +twice):\n%s", diff)
	}
}

func TestRelocateError_NilNode(t *testing.T) {
	if _, err := selectother.RelocateError(nil); !errors.Is(err, renderarray.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRelocateErrorValue(t *testing.T) {
	got, err := selectother.RelocateErrorValue(map[string]any{
		"select": map[string]any{"errorNoMessage": true},
	})
	if err != nil {
		t.Fatalf("RelocateErrorValue: %v", err)
	}
	want := renderarray.Node{
		"select":         map[string]any{},
		"errorNoMessage": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("node mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []any{nil, "node", 3, []any{}} {
		if _, err := selectother.RelocateErrorValue(input); !errors.Is(err, renderarray.ErrInvalidArgument) {
			t.Fatalf("RelocateErrorValue(%#v): expected ErrInvalidArgument, got %v", input, err)
		}
	}
}

func TestTrustedCallbacks(t *testing.T) {
	provider := selectother.Callbacks{}
	want := []string{"relocateError"}

	if diff := cmp.Diff(want, provider.TrustedCallbacks()); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}

	first := provider.TrustedCallbacks()
	first[0] = "mutated"
	if _, err := selectother.RelocateError(renderarray.Node{}); err != nil {
		t.Fatalf("RelocateError: %v", err)
	}
	if diff := cmp.Diff(want, provider.TrustedCallbacks()); diff != "" {
		t.Fatalf("manifest changed between calls (-want +got):\n%s", diff)
	}
}

func TestRegisterAndInvoke(t *testing.T) {
	reg := callbacks.NewRegistry()
	if err := selectother.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	ref := selectother.Definition().PreRender[0]
	if ref != "selectother::relocateError" {
		t.Fatalf("unexpected definition reference %q", ref)
	}

	got, err := reg.Invoke(ref, renderarray.Node{"select": renderarray.Node{"errorNoMessage": true}})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	want := renderarray.Node{"select": renderarray.Node{}, "errorNoMessage": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("node mismatch (-want +got):\n%s", diff)
	}

	if _, err := reg.Resolve("selectother::Callback"); !errors.Is(err, callbacks.ErrUntrustedCallback) {
		t.Fatalf("expected untrusted error for method outside the manifest, got %v", err)
	}
}
