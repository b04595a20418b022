package main

import (
	"strings"
	"testing"

	"ampl/internal/symtab"
)

func TestBuildSymbols_GlobalsAndSubroutine(t *testing.T) {
	src := `program demo:

int x
bool flag

int add(int a, int b) ->
  int sum
end

main:
  int t
end`

	st, diags, err := buildSymbols(src)
	if err != nil {
		t.Fatalf("buildSymbols: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	// After "main" the global scope is active again.
	p, ok := st.Lookup("x")
	if !ok || p.Offset != 1 {
		t.Fatalf("x: want offset 1, got %+v (found=%v)", p, ok)
	}
	p, ok = st.Lookup("flag")
	if !ok || p.Offset != 2 || p.Type != symtab.TypeBoolean {
		t.Fatalf("flag: got %+v (found=%v)", p, ok)
	}

	p, ok = st.Lookup("add")
	if !ok || !p.Type.IsCallable() {
		t.Fatalf("add: want callable, got %+v (found=%v)", p, ok)
	}
	if len(p.Params) != 2 || p.Params[0] != symtab.TypeInteger || p.Params[1] != symtab.TypeInteger {
		t.Fatalf("add params: got %v", p.Params)
	}

	// Subroutine locals are gone.
	if _, ok := st.Lookup("sum"); ok {
		t.Fatal("sum must not be visible at global scope")
	}
	if _, ok := st.Lookup("a"); ok {
		t.Fatal("parameters must not be visible at global scope")
	}

	// x, flag, t occupy slots 1..3.
	p, ok = st.Lookup("t")
	if !ok || p.Offset != 3 {
		t.Fatalf("t: want offset 3, got %+v (found=%v)", p, ok)
	}
	if got := st.FrameWidth(); got != 4 {
		t.Fatalf("frame width: want 4, got %d", got)
	}
}

func TestBuildSymbols_ParamsAndLocalsShareScope(t *testing.T) {
	src := `bool check(int n) ->
  int n
end`

	_, diags, err := buildSymbols(src)
	if err != nil {
		t.Fatalf("buildSymbols: %v", err)
	}
	if len(diags) != 1 || diags[0].Code != codeRedeclared {
		t.Fatalf("want one %s diagnostic for n, got %v", codeRedeclared, diags)
	}
}

func TestBuildSymbols_RedeclaredGlobal(t *testing.T) {
	src := "int x\nbool x\n"

	st, diags, err := buildSymbols(src)
	if err != nil {
		t.Fatalf("buildSymbols: %v", err)
	}
	if len(diags) != 1 || diags[0].Code != codeRedeclared {
		t.Fatalf("want one %s diagnostic, got %v", codeRedeclared, diags)
	}

	// The first declaration wins.
	p, ok := st.Lookup("x")
	if !ok || p.Type != symtab.TypeInteger {
		t.Fatalf("x: got %+v (found=%v)", p, ok)
	}
}

func TestBuildSymbols_DumpOutput(t *testing.T) {
	st, _, err := buildSymbols("int x\nint y\n")
	if err != nil {
		t.Fatalf("buildSymbols: %v", err)
	}

	var sb strings.Builder
	st.Dump(&sb)
	out := sb.String()

	if !strings.Contains(out, "x@1[integer]") || !strings.Contains(out, "y@2[integer]") {
		t.Fatalf("dump missing entries:\n%s", out)
	}
}

func TestBuildSymbols_VariableList(t *testing.T) {
	st, diags, err := buildSymbols("int a, b, c\n")
	if err != nil {
		t.Fatalf("buildSymbols: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	for i, name := range []string{"a", "b", "c"} {
		p, ok := st.Lookup(name)
		if !ok || p.Offset != i+1 {
			t.Fatalf("%s: want offset %d, got %+v (found=%v)", name, i+1, p, ok)
		}
	}
	if st.FrameWidth() != 4 {
		t.Fatalf("frame width: want 4, got %d", st.FrameWidth())
	}
}
