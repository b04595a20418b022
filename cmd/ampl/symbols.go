package main

import (
	"errors"

	"ampl/internal/diag"
	"ampl/internal/lexer"
	"ampl/internal/symtab"
	"ampl/internal/token"
)

// Diagnostic code reported by the declaration pass.
const codeRedeclared = "AM0101"

// buildSymbols runs a declaration-reading pass over the token stream and
// returns the resulting symbol table. Subroutine headers
// ("int"|"bool" ["array"] name "(" params ")") open a scope; typed
// identifier lists declare variables; "main" closes an open subroutine
// scope. It is deliberately not a parser — anything between declarations is
// skipped, and the table reflects the innermost scope still open at EOF.
func buildSymbols(src string) (*symtab.SymbolTable, []diag.Diagnostic, error) {
	st, err := symtab.New()
	if err != nil {
		return nil, nil, err
	}

	lx := lexer.New(src)
	var toks []token.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	diags := append([]diag.Diagnostic{}, lx.Diagnostics()...)

	i := 0
	for i < len(toks) {
		switch toks[i].Type {
		case token.INT, token.BOOL:
			var used int
			used, diags = scanDeclaration(st, toks[i:], diags)
			i += used

		case token.MAIN:
			// The program body runs in the global scope.
			if err := st.CloseScope(); err != nil && !errors.Is(err, symtab.ErrGlobalScope) {
				return nil, nil, err
			}
			i++

		default:
			i++
		}
	}

	return st, diags, nil
}

// scanDeclaration consumes one typed declaration starting at toks[0] and
// returns how many tokens it used.
func scanDeclaration(st *symtab.SymbolTable, toks []token.Token, diags []diag.Diagnostic) (int, []diag.Diagnostic) {
	typ := symtab.TypeInteger
	if toks[0].Type == token.BOOL {
		typ = symtab.TypeBoolean
	}

	i := 1
	if i < len(toks) && toks[i].Type == token.ARRAY {
		typ |= symtab.TypeArray
		i++
	}
	if i >= len(toks) || toks[i].Type != token.ID {
		return i, diags
	}
	name := toks[i]
	i++

	if i < len(toks) && toks[i].Type == token.LPAREN {
		return scanSubroutine(st, toks, i+1, name, typ, diags)
	}

	// Variable list: name {"," name}.
	diags = declare(st, name, &symtab.Properties{Type: typ}, diags)
	for i+1 < len(toks) && toks[i].Type == token.COMMA && toks[i+1].Type == token.ID {
		diags = declare(st, toks[i+1], &symtab.Properties{Type: typ}, diags)
		i += 2
	}
	return i, diags
}

// scanSubroutine handles a header whose "(" is at toks[start-1]: it opens
// the subroutine scope and declares the parameters inside it.
func scanSubroutine(st *symtab.SymbolTable, toks []token.Token, start int, name token.Token, ret symtab.ValType, diags []diag.Diagnostic) (int, []diag.Diagnostic) {
	type param struct {
		tok token.Token
		typ symtab.ValType
	}
	var params []param

	i := start
	for i < len(toks) && toks[i].Type != token.RPAREN && toks[i].Type != token.EOF {
		if toks[i].Type == token.INT || toks[i].Type == token.BOOL {
			pt := symtab.TypeInteger
			if toks[i].Type == token.BOOL {
				pt = symtab.TypeBoolean
			}
			i++
			if i < len(toks) && toks[i].Type == token.ARRAY {
				pt |= symtab.TypeArray
				i++
			}
			if i < len(toks) && toks[i].Type == token.ID {
				params = append(params, param{tok: toks[i], typ: pt})
				i++
			}
			continue
		}
		i++
	}
	if i < len(toks) && toks[i].Type == token.RPAREN {
		i++
	}

	prop := &symtab.Properties{Type: ret | symtab.TypeCallable}
	for _, p := range params {
		prop.Params = append(prop.Params, p.typ)
	}

	// A new header ends the previous subroutine's scope; subroutines do not
	// nest.
	if err := st.CloseScope(); err != nil && !errors.Is(err, symtab.ErrGlobalScope) {
		return i, diags
	}

	if err := st.OpenScope(name.Literal, prop); err != nil {
		diags = append(diags, diag.Errorf(codeRedeclared, name.Line, name.Col, len(name.Literal),
			"cannot declare subroutine %q: %v", name.Literal, err))
		return i, diags
	}

	for _, p := range params {
		diags = declare(st, p.tok, &symtab.Properties{Type: p.typ}, diags)
	}
	return i, diags
}

func declare(st *symtab.SymbolTable, name token.Token, prop *symtab.Properties, diags []diag.Diagnostic) []diag.Diagnostic {
	if err := st.Declare(name.Literal, prop); err != nil {
		diags = append(diags, diag.Errorf(codeRedeclared, name.Line, name.Col, len(name.Literal),
			"%q redeclared in this scope", name.Literal))
	}
	return diags
}
