package ingest

import (
	"fmt"
	"strings"
	"unicode"
)

// The source dataset serializes its list-valued columns as Python-style
// literals: `['Comedy', 'Drama']`, or for companies a list of dicts like
// `[{'id': 'co0092633', 'name': 'Twentieth Century Fox'}]`. parseListLiteral
// turns one of those into a slice whose elements are string or
// map[string]string. Anything that does not scan as a list is an error; the
// normalizer maps that to an empty list.
func parseListLiteral(s string) ([]any, error) {
	p := &literalParser{input: []rune(s)}
	p.skipSpace()
	if p.done() {
		return nil, nil
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, fmt.Errorf("trailing data at offset %d", p.pos)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("literal is not a list")
	}
	return list, nil
}

type literalParser struct {
	input []rune
	pos   int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *literalParser) peek() rune {
	return p.input[p.pos]
}

func (p *literalParser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func (p *literalParser) parseValue() (any, error) {
	p.skipSpace()
	if p.done() {
		return nil, fmt.Errorf("unexpected end of literal")
	}
	switch c := p.peek(); {
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseDict()
	case c == '\'' || c == '"':
		return p.parseString()
	default:
		return p.parseBare()
	}
}

func (p *literalParser) parseList() ([]any, error) {
	p.pos++ // consume '['
	items := []any{}
	for {
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated list")
		}
		if p.peek() == ']' {
			p.pos++
			return items, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated list")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, fmt.Errorf("unexpected %q in list at offset %d", p.peek(), p.pos)
		}
	}
}

func (p *literalParser) parseDict() (map[string]string, error) {
	p.pos++ // consume '{'
	dict := map[string]string{}
	for {
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated dict")
		}
		if p.peek() == '}' {
			p.pos++
			return dict, nil
		}
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.done() || p.peek() != ':' {
			return nil, fmt.Errorf("expected ':' in dict at offset %d", p.pos)
		}
		p.pos++
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		ks, _ := key.(string)
		if vs, ok := val.(string); ok && ks != "" {
			dict[ks] = vs
		}
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated dict")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, fmt.Errorf("unexpected %q in dict at offset %d", p.peek(), p.pos)
		}
	}
}

func (p *literalParser) parseString() (string, error) {
	quote := p.peek()
	p.pos++
	var b strings.Builder
	for !p.done() {
		c := p.peek()
		switch c {
		case '\\':
			p.pos++
			if p.done() {
				return "", fmt.Errorf("unterminated escape")
			}
			esc := p.peek()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			p.pos++
		case quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteRune(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// parseBare consumes an unquoted token (numbers, True/False/None, nan).
// Numeric tokens come back as strings; the normalizer only cares about
// labels, and None/nan map to nil.
func (p *literalParser) parseBare() (any, error) {
	start := p.pos
	for !p.done() {
		c := p.peek()
		if c == ',' || c == ']' || c == '}' || c == ':' {
			break
		}
		p.pos++
	}
	token := strings.TrimSpace(string(p.input[start:p.pos]))
	if token == "" {
		return nil, fmt.Errorf("empty token at offset %d", start)
	}
	switch token {
	case "None", "nan", "NaN":
		return nil, nil
	}
	return token, nil
}
