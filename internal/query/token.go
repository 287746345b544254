package query

// Token is one unit of query text, with the byte offset where it started in
// the raw string. Offsets survive into compile errors so the CLI can point
// at the offending term.
type Token struct {
	Text string
	Pos  int
}

// Split breaks a raw query into tokens on ASCII whitespace. Text inside
// matching single or double quotes stays in one token and the quotes are
// stripped, so a token may contain spaces. Tokens are never empty; an
// all-whitespace input yields no tokens.
func Split(raw string) ([]Token, error) {
	var tokens []Token
	var buf []byte
	start := -1
	quote := byte(0)
	quoteStart := 0

	flush := func() {
		if start >= 0 && len(buf) > 0 {
			tokens = append(tokens, Token{Text: string(buf), Pos: start})
		}
		buf = buf[:0]
		start = -1
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				buf = append(buf, c)
			}
		case c == '\'' || c == '"':
			quote = c
			quoteStart = i
			if start < 0 {
				start = i
			}
		case isSpace(c):
			flush()
		default:
			if start < 0 {
				start = i
			}
			buf = append(buf, c)
		}
	}

	if quote != 0 {
		return nil, &Error{
			Code:   CodeUnterminatedQuote,
			Token:  raw[quoteStart:],
			Pos:    quoteStart,
			Reason: "quote opened but never closed",
		}
	}
	flush()
	return tokens, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
