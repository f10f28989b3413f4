package lexer

import (
	"testing"

	"accumula/token"
)

func tokenTypes(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.TokenType
	}
	return out
}

func assertTypes(t *testing.T, got []token.Token, want []token.TokenType) {
	t.Helper()
	gotTypes := tokenTypes(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(gotTypes), len(want), gotTypes)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, gotTypes[i], want[i])
		}
	}
}

func TestScanOperators(t *testing.T) {
	scanner := CreateLexer(":= = != <= < >= > + - * / %")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	assertTypes(t, got, []token.TokenType{
		token.ASSIGN, token.EQUAL, token.NOT_EQUAL, token.LESS_EQUAL, token.LESS,
		token.LARGER_EQUAL, token.LARGER, token.ADD, token.SUB, token.MULT,
		token.DIV, token.MOD, token.EOF,
	})
}

func TestScanPunctuation(t *testing.T) {
	scanner := CreateLexer("( ) [ ] , ; :")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	assertTypes(t, got, []token.TokenType{
		token.LPA, token.RPA, token.LBRACKET, token.RBRACKET, token.COMMA,
		token.SEMICOLON, token.COLON, token.EOF,
	})
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	scanner := CreateLexer("DECLARE n, tab(1:10); BEGIN READ n; WRITE n; END")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	assertTypes(t, got, []token.TokenType{
		token.DECLARE, token.IDENTIFIER, token.COMMA, token.IDENTIFIER, token.LPA,
		token.INT, token.COLON, token.INT, token.RPA, token.SEMICOLON,
		token.BEGIN, token.READ, token.IDENTIFIER, token.SEMICOLON,
		token.WRITE, token.IDENTIFIER, token.SEMICOLON, token.END, token.EOF,
	})
}

func TestScanNumber(t *testing.T) {
	scanner := CreateLexer("12345")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(got) != 2 || got[0].TokenType != token.INT || got[0].Literal != int64(12345) {
		t.Fatalf("Scan() = %+v, want a single INT(12345) token", got)
	}
}

func TestScanComment(t *testing.T) {
	scanner := CreateLexer("n := 1; # this sets n to one\nWRITE n;")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	assertTypes(t, got, []token.TokenType{
		token.IDENTIFIER, token.ASSIGN, token.INT, token.SEMICOLON,
		token.WRITE, token.IDENTIFIER, token.SEMICOLON, token.EOF,
	})
}

func TestScanUnexpectedCharacter(t *testing.T) {
	scanner := CreateLexer("n @ 1")
	if _, err := scanner.Scan(); err == nil {
		t.Fatal("Scan() expected an error for an unrecognized character, got nil")
	}
}
