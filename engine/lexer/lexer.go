package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// decorative characters are dropped without a diagnostic
var decorative = map[rune]bool{
	';': true, '!': true, '?': true, '`': true, '´': true, '¨': true,
	'^': true, '~': true, '|': true, '°': true, '«': true, '»': true,
	'‘': true, '’': true, '“': true, '”': true, '…': true, '–': true,
	'—': true,
}

// Tokenizer converts input string to tokens
type Tokenizer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
	errors []LexError
}

// Tokenize converts a command to tokens. It never fails: characters that do
// not start a token are reported as LexError diagnostics and skipped.
func Tokenize(input string) ([]Token, []LexError) {
	t := &Tokenizer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
	return t.tokenize()
}

func (t *Tokenizer) tokenize() ([]Token, []LexError) {
	for t.pos < len(t.input) {
		if t.skipWhitespace() {
			continue
		}

		ch, _ := utf8.DecodeRuneInString(t.input[t.pos:])

		switch {
		case ch == '\'' && t.peekRune() == '{':
			if token, ok := t.scanJSONBlob(); ok {
				t.tokens = append(t.tokens, token)
				continue
			}
			t.scanString(ch)
			continue
		case ch == '\'' || ch == '"':
			t.scanString(ch)
			continue
		case isWordStart(ch):
			t.tokens = append(t.tokens, t.scanWord())
			continue
		case isDigit(ch) || (ch == '-' && isDigit(t.peekRune())):
			t.tokens = append(t.tokens, t.scanNumber())
			continue
		}

		if tokenType, width := punctuation(t.input[t.pos:]); width > 0 {
			t.addToken(tokenType, t.input[t.pos:t.pos+width])
			for i := 0; i < width; i++ {
				t.advance()
			}
			continue
		}

		if !decorative[ch] && !unicode.Is(unicode.Mn, ch) {
			t.errors = append(t.errors, LexError{
				Char:     ch,
				Message:  fmt.Sprintf("unexpected character '%c'", ch),
				Position: t.pos,
				Line:     t.line,
				Column:   t.column,
			})
		}
		t.advance()
	}

	t.addToken(TOKEN_EOF, "")

	return t.tokens, t.errors
}

func (t *Tokenizer) skipWhitespace() bool {
	skipped := false
	for t.pos < len(t.input) {
		ch, size := utf8.DecodeRuneInString(t.input[t.pos:])
		if ch == '\n' {
			t.line++
			t.column = 1
			t.pos += size
			skipped = true
		} else if unicode.IsSpace(ch) {
			t.column++
			t.pos += size
			skipped = true
		} else {
			break
		}
	}
	return skipped
}

// advance moves past one rune
func (t *Tokenizer) advance() {
	if t.pos >= len(t.input) {
		return
	}
	ch, size := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += size
	if ch == '\n' {
		t.line++
		t.column = 1
		return
	}
	t.column++
}

// advanceTo moves to the byte offset end, keeping line and column in step
func (t *Tokenizer) advanceTo(end int) {
	for t.pos < end {
		t.advance()
	}
}

func (t *Tokenizer) peekRune() rune {
	_, size := utf8.DecodeRuneInString(t.input[t.pos:])
	if t.pos+size >= len(t.input) {
		return utf8.RuneError
	}
	next, _ := utf8.DecodeRuneInString(t.input[t.pos+size:])
	return next
}

func (t *Tokenizer) addToken(tokenType TokenType, value string) {
	t.tokens = append(t.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: t.pos,
		Line:     t.line,
		Column:   t.column,
	})
}

// scanJSONBlob reads '{ ... }' up to the brace that balances the opening
// one, when a quote follows it. Braces inside JSON strings do not count. The
// token value keeps the braces and drops the quotes.
func (t *Tokenizer) scanJSONBlob() (Token, bool) {
	end := balancedBrace(t.input[t.pos+1:])
	if end < 0 || t.pos+1+end+1 >= len(t.input) || t.input[t.pos+1+end+1] != '\'' {
		return Token{}, false
	}

	token := Token{
		Type:     TOKEN_JSON_BLOB,
		Value:    t.input[t.pos+1 : t.pos+1+end+1],
		Position: t.pos,
		Line:     t.line,
		Column:   t.column,
	}
	t.advanceTo(t.pos + 1 + end + 2)
	return token, true
}

// balancedBrace returns the offset of the '}' closing the '{' at s[0], or -1
// when a quote outside a JSON string ends the literal first
func balancedBrace(s string) int {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '\'':
			return -1
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanString reads a quoted literal. Escapes are not interpreted. An
// unterminated quote is reported and skipped.
func (t *Tokenizer) scanString(quote rune) {
	startPos := t.pos
	startLine := t.line
	startCol := t.column

	closing := strings.IndexRune(t.input[t.pos+1:], quote)
	if closing < 0 {
		t.errors = append(t.errors, LexError{
			Char:     quote,
			Message:  fmt.Sprintf("unclosed string, expected %c", quote),
			Position: startPos,
			Line:     startLine,
			Column:   startCol,
		})
		t.advance()
		return
	}

	value := t.input[t.pos+1 : t.pos+1+closing]
	t.advanceTo(t.pos + 1 + closing + 1)

	t.tokens = append(t.tokens, Token{
		Type:     TOKEN_STRING,
		Value:    value,
		Position: startPos,
		Line:     startLine,
		Column:   startCol,
	})
}

func (t *Tokenizer) scanNumber() Token {
	startPos := t.pos
	startCol := t.column

	var value strings.Builder

	if t.input[t.pos] == '-' {
		value.WriteByte('-')
		t.advance()
	}

	for t.pos < len(t.input) && isDigit(rune(t.input[t.pos])) {
		value.WriteByte(t.input[t.pos])
		t.advance()
	}

	return Token{
		Type:     TOKEN_NUMBER,
		Value:    value.String(),
		Position: startPos,
		Line:     t.line,
		Column:   startCol,
	}
}

func (t *Tokenizer) scanWord() Token {
	startPos := t.pos
	startCol := t.column

	for t.pos < len(t.input) && isWordPart(rune(t.input[t.pos])) {
		t.advance()
	}

	word := t.input[startPos:t.pos]
	return Token{
		Type:     LookupWord(word),
		Value:    word,
		Position: startPos,
		Line:     t.line,
		Column:   startCol,
	}
}

// punctuation matches two-character operators before single characters
func punctuation(rest string) (TokenType, int) {
	if len(rest) >= 2 {
		switch rest[:2] {
		case "<>":
			return TOKEN_NEQ, 2
		case "<=":
			return TOKEN_LTE, 2
		case ">=":
			return TOKEN_GTE, 2
		}
	}

	switch rest[0] {
	case ',':
		return TOKEN_COMMA, 1
	case '(':
		return TOKEN_LPAREN, 1
	case ')':
		return TOKEN_RPAREN, 1
	case '=':
		return TOKEN_EQ, 1
	case '<':
		return TOKEN_LT, 1
	case '>':
		return TOKEN_GT, 1
	case '*':
		return TOKEN_STAR, 1
	case ':':
		return TOKEN_COLON, 1
	case '[':
		return TOKEN_LBRACKET, 1
	case ']':
		return TOKEN_RBRACKET, 1
	case '{':
		return TOKEN_LBRACE, 1
	case '}':
		return TOKEN_RBRACE, 1
	case '&':
		return TOKEN_AMPERSAND, 1
	case '.':
		return TOKEN_DOT, 1
	case '\\':
		return TOKEN_BACKSLASH, 1
	}
	return TOKEN_UNKNOWN, 0
}

func isWordStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isWordPart(ch rune) bool {
	return isWordStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
