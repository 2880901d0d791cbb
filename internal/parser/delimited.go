package parser

import (
	"github.com/quill-lang/quill/internal/lexer"
)

type delimitedConfig struct {
	Closing lexer.TokenType

	// Comma accepts ',' between elements; Newline accepts newline and ';'
	// separators. The structured definition bodies treat all three as
	// interchangeable; list literals accept commas only.
	Comma   bool
	Newline bool

	AllowEmpty bool

	ElementMsg   string
	SeparatorMsg string
}

// parseDelimited parses a separated list inside a delimiter pair. It is
// entered with curTok at the opening delimiter and returns with curTok at
// the closing one. parseItem is called with curTok at the first token of
// the element and must leave curTok at its last token. On a failed
// element the list recovers at the next separator at the current depth
// and keeps going, so one bad element yields one diagnostic.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) ([]T, bool) {
	var items []T
	ok := true

	elementMsg := cfg.ElementMsg
	if elementMsg == "" {
		elementMsg = "expected element"
	}
	separatorMsg := cfg.SeparatorMsg
	if separatorMsg == "" {
		separatorMsg = "expected ',' or '" + string(cfg.Closing) + "'"
	}

	p.nextToken() // past the opening delimiter
	p.skipSeparators()

	if p.curTok.Type == cfg.Closing {
		if !cfg.AllowEmpty {
			p.reportError(elementMsg, p.curTok.Span)
			return items, false
		}
		return items, true
	}

	for {
		prevTok := p.curTok
		item, itemOK := parseItem(len(items))
		if !itemOK {
			ok = false
			p.recoverStatement(prevTok)
			if p.curTok.Type == cfg.Closing || p.curTok.Type == lexer.EOF {
				return items, false
			}
			p.skipSeparators()
			if p.curTok.Type == cfg.Closing || p.curTok.Type == lexer.EOF {
				return items, false
			}
			continue
		}
		items = append(items, item)

		p.nextToken() // past the item's last token

		sawSeparator := false
		for lexer.IsSeparator(p.curTok.Type) {
			sawSeparator = true
			p.nextToken()
		}

		if p.curTok.Type == cfg.Closing {
			return items, ok
		}
		if p.curTok.Type == lexer.EOF {
			p.reportError("expected '"+string(cfg.Closing)+"'", p.curTok.Span)
			return items, false
		}

		if cfg.Comma && p.curTok.Type == lexer.COMMA {
			p.nextToken()
			p.skipSeparators()
			if p.curTok.Type == cfg.Closing {
				p.reportError(elementMsg, p.curTok.Span)
				return items, false
			}
			continue
		}

		if cfg.Newline && sawSeparator {
			continue
		}

		p.reportError(separatorMsg, p.curTok.Span)
		p.recoverStatement(p.curTok)
		if p.curTok.Type == cfg.Closing || p.curTok.Type == lexer.EOF {
			return items, false
		}
		ok = false
		p.skipSeparators()
	}
}
