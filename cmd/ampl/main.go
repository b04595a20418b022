package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ampl/internal/diag"
	"ampl/internal/lexer"
	"ampl/internal/token"
)

func main() {
	tokensMode := flag.Bool("tokens", false, "print the token stream instead of linting")
	symbolsMode := flag.Bool("symbols", false, "print the symbol table instead of linting")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ampl [-tokens|-symbols] <file|dir> [more...]")
		os.Exit(2)
	}

	files, err := collectAmplFiles(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		return
	}
	sort.Strings(files)

	hadErrors := false
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src := string(b)

		switch {
		case *tokensMode:
			dumpTokens(src)

		case *symbolsMode:
			st, diags, err := buildSymbols(src)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			for _, d := range diags {
				fmt.Println(d.Format(path))
				if d.Severity == diag.SeverityError {
					hadErrors = true
				}
			}
			st.Dump(os.Stdout)
			fmt.Printf("frame width: %d\n", st.FrameWidth())
			if err := st.Release(); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}

		default:
			for _, d := range lintSource(src) {
				fmt.Println(d.Format(path))
				if d.Severity == diag.SeverityError {
					hadErrors = true
				}
			}
		}
	}

	if hadErrors {
		os.Exit(1)
	}
}

func dumpTokens(src string) {
	l := lexer.New(src)
	for {
		tok := l.NextToken()
		fmt.Printf("%4d:%-3d  %-10s  %q\n", tok.Line, tok.Col, tok.Type, tok.Literal)
		if tok.Type == token.EOF {
			break
		}
	}
}

// lintSource drains the token stream and returns the scanner's diagnostics.
func lintSource(src string) []diag.Diagnostic {
	l := lexer.New(src)
	for {
		if l.NextToken().Type == token.EOF {
			break
		}
	}
	return l.Diagnostics()
}

func collectAmplFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if strings.HasSuffix(target, ".ampl") {
				files = append(files, target)
			}
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if filepath.Base(path) == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".ampl") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
