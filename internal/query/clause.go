package query

import (
	"fmt"
	"strings"
)

// Clause is one classified token: a concrete field kind, an optional
// negation, and the raw value text still to be compiled.
type Clause struct {
	Field   Field
	Negated bool
	Value   string

	token Token
}

var prefixes = []struct {
	text  string
	field Field
}{
	{"acct:", FieldAccount},
	{"amt:", FieldAmount},
	{"date:", FieldDate},
	{"desc:", FieldDescription},
	{"sec:", FieldSecurity},
	{"type:", FieldType},
}

// Classify resolves a token's field kind and negation for a context.
// The not: prefix is stripped at most once; a second not: stays literal
// text for the next classification step. Prefix matching is case-sensitive.
func Classify(tok Token, ctx Context) (Clause, error) {
	text := tok.Text
	negated := false
	if rest, ok := strings.CutPrefix(text, "not:"); ok {
		negated = true
		text = rest
	}

	field := FieldDefault
	value := text
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(text, p.text); ok {
			field = p.field
			value = rest
			break
		}
	}

	if field == FieldDefault {
		field = ctx.DefaultField()
	} else if !ctx.Allows(field) {
		return Clause{}, &Error{
			Code:   CodeIllegalField,
			Token:  tok.Text,
			Pos:    tok.Pos,
			Reason: fmt.Sprintf("%s is not searchable on %s", field, ctx),
		}
	}

	return Clause{Field: field, Negated: negated, Value: value, token: tok}, nil
}
