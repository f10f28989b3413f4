package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		wantLex   string
	}{
		{name: "Create ASSIGN token", tokenType: ASSIGN, wantLex: ":="},
		{name: "Create MULT token", tokenType: MULT, wantLex: "*"},
		{name: "Create LESS_EQUAL token", tokenType: LESS_EQUAL, wantLex: "<="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, 3, 7)
			if got.TokenType != tt.tokenType || got.Lexeme != tt.wantLex {
				t.Errorf("CreateToken() = %+v, want type %v lexeme %q", got, tt.tokenType, tt.wantLex)
			}
			if got.Line != 3 || got.Column != 7 {
				t.Errorf("CreateToken() position = (%d,%d), want (3,7)", got.Line, got.Column)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(INT, int64(42), "42", 1, 0)
	if got.TokenType != INT || got.Lexeme != "42" || got.Literal != int64(42) {
		t.Errorf("CreateLiteralToken() = %+v, want INT 42", got)
	}
}

func TestKeyWordsLookup(t *testing.T) {
	for word, want := range KeyWords {
		if got := KeyWords[word]; got != want {
			t.Errorf("KeyWords[%q] = %v, want %v", word, got, want)
		}
	}
	if _, ok := KeyWords["n"]; ok {
		t.Errorf("KeyWords contains non-keyword identifier \"n\"")
	}
}
