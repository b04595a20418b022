package lsp

import (
	"reflect"
	"testing"

	"ampl/internal/diag"
)

func TestSemanticTokensForText(t *testing.T) {
	sem := SemanticTokensForText(`let x = 42`)

	want := []SemTok{
		{Line: 1, Col: 1, Length: 3, Type: TTKeyword},  // let
		{Line: 1, Col: 5, Length: 1, Type: TTVariable}, // x
		{Line: 1, Col: 7, Length: 1, Type: TTOperator}, // =
		{Line: 1, Col: 9, Length: 2, Type: TTNumber},   // 42
	}
	if !reflect.DeepEqual(sem, want) {
		t.Fatalf("want %v, got %v", want, sem)
	}
}

func TestSemanticTokensStringSpanIncludesQuotes(t *testing.T) {
	sem := SemanticTokensForText(`output "hi"`)
	if len(sem) != 2 {
		t.Fatalf("want 2 tokens, got %v", sem)
	}
	str := sem[1]
	if str.Type != TTString || str.Col != 8 || str.Length != 4 {
		t.Fatalf("string token should cover the quotes, got %+v", str)
	}
}

func TestEncodeSemanticTokens(t *testing.T) {
	toks := []SemTok{
		{Line: 2, Col: 3, Length: 4, Type: TTVariable},
		{Line: 1, Col: 1, Length: 3, Type: TTKeyword},
		{Line: 2, Col: 9, Length: 1, Type: TTOperator},
	}

	data := EncodeSemanticTokens(toks)
	want := []uint32{
		0, 0, 3, TTKeyword, 0, // 1:1, first token
		1, 2, 4, TTVariable, 0, // next line, col 3
		0, 6, 1, TTOperator, 0, // same line, 6 cols later
	}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("want %v, got %v", want, data)
	}
}

func TestToLspDiagnostics(t *testing.T) {
	ds := []diag.Diagnostic{
		diag.Errorf("AM0001", 3, 5, 2, "illegal character"),
	}

	out := ToLspDiagnostics(ds)
	if len(out) != 1 {
		t.Fatalf("want 1 diagnostic, got %d", len(out))
	}
	d := out[0]
	if d.Range.Start.Line != 2 || d.Range.Start.Character != 4 {
		t.Fatalf("positions must convert to 0-based, got %+v", d.Range.Start)
	}
	if d.Range.End.Character != 6 {
		t.Fatalf("range end must honor the length, got %+v", d.Range.End)
	}
	if d.Code == nil || d.Code.Value != "AM0001" {
		t.Fatalf("code not carried over: %+v", d.Code)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()

	s.Set("file:///a.ampl", "one")
	if text, ok := s.Get("file:///a.ampl"); !ok || text != "one" {
		t.Fatalf("get after set failed: %q %v", text, ok)
	}

	s.Set("file:///a.ampl", "two")
	if text, _ := s.Get("file:///a.ampl"); text != "two" {
		t.Fatalf("set must replace: %q", text)
	}

	s.Delete("file:///a.ampl")
	if _, ok := s.Get("file:///a.ampl"); ok {
		t.Fatal("delete must remove the document")
	}
}
