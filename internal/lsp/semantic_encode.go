package lsp

import "sort"

// EncodeSemanticTokens converts to the LSP delta encoding: five uint32 per
// token, positions relative to the previous token.
func EncodeSemanticTokens(toks []SemTok) []uint32 {
	sort.Slice(toks, func(i, j int) bool {
		if toks[i].Line != toks[j].Line {
			return toks[i].Line < toks[j].Line
		}
		return toks[i].Col < toks[j].Col
	})

	var data []uint32
	prevLine := 1
	prevCol := 1

	for _, t := range toks {
		if t.Length <= 0 {
			continue
		}

		// Stored positions are 1-based; the wire format is 0-based.
		line0 := t.Line - 1
		col0 := t.Col - 1

		deltaLine := line0 - (prevLine - 1)
		deltaStart := col0
		if deltaLine == 0 {
			deltaStart = col0 - (prevCol - 1)
		}

		data = append(data,
			uint32(deltaLine),
			uint32(deltaStart),
			uint32(t.Length),
			uint32(t.Type),
			0, // no modifiers
		)

		prevLine = t.Line
		prevCol = t.Col
	}

	return data
}
