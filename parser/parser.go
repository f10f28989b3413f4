// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// A Recursive descent parser is a top-down parser because it starts from
// the top grammar rule and works its way down into the nested
// sub-expressions before reaching the leaves of the syntax tree (terminal
// rules).
package parser

import (
	"fmt"

	"accumula/ast"
	"accumula/token"
)

var arithmeticTokenTypes = []token.TokenType{
	token.ADD,
	token.SUB,
	token.MULT,
	token.DIV,
	token.MOD,
}

var relationalTokenTypes = []token.TokenType{
	token.EQUAL,
	token.NOT_EQUAL,
	token.LESS_EQUAL,
	token.LESS,
	token.LARGER_EQUAL,
	token.LARGER,
}

var arithmeticOps = map[token.TokenType]ast.ExprOp{
	token.ADD:  ast.Plus,
	token.SUB:  ast.Minus,
	token.MULT: ast.Times,
	token.DIV:  ast.Div,
	token.MOD:  ast.Mod,
}

var relationalOps = map[token.TokenType]ast.RelOp{
	token.EQUAL:        ast.EQ,
	token.NOT_EQUAL:    ast.NEQ,
	token.LESS_EQUAL:   ast.LEQ,
	token.LESS:         ast.LT,
	token.LARGER_EQUAL: ast.GEQ,
	token.LARGER:       ast.GT,
}

// Parser consumes a token stream and produces an ast.Program.
type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parser's position is always one unit ahead of the
// current token, mirroring the original lexer's own read-ahead discipline.

// Create initializes and returns a new Parser instance over tokens.
func Create(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Make is an alias for Create kept for callers that spell the constructor
// by its verb.
func Make(tokens []token.Token) *Parser {
	return Create(tokens)
}

// peek returns the token at the parser's current position without
// advancing.
func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

// previous returns the token at the parser's previous position.
func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

// advance increments the parser's position by one and returns the
// just-consumed token.
func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

// isFinished determines if the parser has reached the end of the token
// stream.
func (parser *Parser) isFinished() bool {
	return parser.peek().TokenType == token.EOF
}

// checkType determines if the provided tokenType matches the TokenType at
// the parser's current position.
func (parser *Parser) checkType(tokenType token.TokenType) bool {
	if parser.isFinished() {
		return tokenType == token.EOF
	}
	return parser.peek().TokenType == tokenType
}

// isMatch determines if the TokenType at the current position matches any
// of the provided tokenTypes, consuming it if so.
func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token if it matches tokenType,
// otherwise returns a SyntaxError positioned at the offending token.
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.CreateToken(token.EOF, 0, 0), CreateSyntaxError(currentToken.Line, currentToken.Column, errorMessage)
}

// Parse parses the entire token stream into an ast.Program. Errors found
// while parsing the command list are collected and parsing resynchronizes
// at the next command rather than aborting outright, so a single typo
// doesn't hide every other problem in the program.
//
// Returns:
//   - ast.Program: the parsed program (commands collected so far on error).
//   - []error: every error found; empty means the program parsed cleanly.
func (parser *Parser) Parse() (ast.Program, []error) {
	var errs []error

	var decls []ast.Declaration
	if parser.isMatch([]token.TokenType{token.DECLARE}) {
		for {
			decl, err := parser.declaration()
			if err != nil {
				errs = append(errs, err)
				break
			}
			decls = append(decls, decl)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
		if _, err := parser.consume(token.SEMICOLON, "expected ';' after declarations"); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := parser.consume(token.BEGIN, "expected 'BEGIN'"); err != nil {
		errs = append(errs, err)
	}

	commands, cmdErrs := parser.commands(token.END)
	errs = append(errs, cmdErrs...)

	if _, err := parser.consume(token.END, "expected 'END'"); err != nil {
		errs = append(errs, err)
	}

	return ast.Program{Declarations: decls, Commands: commands}, errs
}

// declaration parses a single "decl" production: a scalar name, or an
// array name with an inclusive "(lo:hi)" bound.
func (parser *Parser) declaration() (ast.Declaration, error) {
	name, err := parser.consume(token.IDENTIFIER, "expected a variable name")
	if err != nil {
		return nil, err
	}

	if !parser.isMatch([]token.TokenType{token.LPA}) {
		return ast.VarDecl{Name_: name.Lexeme}, nil
	}

	lo, err := parser.consume(token.INT, "expected array lower bound")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.COLON, "expected ':' in array bound"); err != nil {
		return nil, err
	}
	hi, err := parser.consume(token.INT, "expected array upper bound")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "expected ')' after array bound"); err != nil {
		return nil, err
	}

	return ast.ArrayDecl{Name_: name.Lexeme, Lo: lo.Literal.(int64), Hi: hi.Literal.(int64)}, nil
}

// commands parses a "commands" block: zero or more commands, until the
// parser sees stop or runs out of tokens. When a command fails to parse,
// its error is recorded, one token is skipped, and parsing resumes from
// there, so a malformed stretch can record several errors.
func (parser *Parser) commands(stop ...token.TokenType) (ast.Commands, []error) {
	var cmds ast.Commands
	var errs []error

	for !parser.isFinished() && !parser.checkTypeAny(stop) {
		cmd, err := parser.command()
		if err != nil {
			errs = append(errs, err)
			parser.advance()
			continue
		}
		cmds = append(cmds, cmd)
	}

	return cmds, errs
}

// checkTypeAny is checkType generalized to a set of acceptable stop tokens.
func (parser *Parser) checkTypeAny(tokenTypes []token.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if parser.checkType(tokenType) {
			return true
		}
	}
	return false
}

// command parses a single "command" production.
func (parser *Parser) command() (ast.Command, error) {
	switch {
	case parser.isMatch([]token.TokenType{token.IF}):
		return parser.ifCommand()
	case parser.isMatch([]token.TokenType{token.WHILE}):
		return parser.whileCommand()
	case parser.isMatch([]token.TokenType{token.REPEAT}):
		return parser.repeatCommand()
	case parser.isMatch([]token.TokenType{token.FOR}):
		return parser.forCommand()
	case parser.isMatch([]token.TokenType{token.READ}):
		return parser.readCommand()
	case parser.isMatch([]token.TokenType{token.WRITE}):
		return parser.writeCommand()
	default:
		return parser.assignCommand()
	}
}

func (parser *Parser) ifCommand() (ast.Command, error) {
	cond, err := parser.condition()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.THEN, "expected 'THEN'"); err != nil {
		return nil, err
	}
	then, thenErrs := parser.commands(token.ELSE, token.ENDIF)
	if err := firstOf(thenErrs); err != nil {
		return nil, err
	}
	if !parser.isMatch([]token.TokenType{token.ELSE}) {
		if _, err := parser.consume(token.ENDIF, "expected 'ENDIF'"); err != nil {
			return nil, err
		}
		return ast.IfCmd{Cond: cond, Then: then}, nil
	}
	els, elseErrs := parser.commands(token.ENDIF)
	if err := firstOf(elseErrs); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.ENDIF, "expected 'ENDIF'"); err != nil {
		return nil, err
	}
	return ast.IfElseCmd{Cond: cond, Then: then, Else_: els}, nil
}

func (parser *Parser) whileCommand() (ast.Command, error) {
	cond, err := parser.condition()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.DO, "expected 'DO'"); err != nil {
		return nil, err
	}
	body, bodyErrs := parser.commands(token.ENDWHILE)
	if err := firstOf(bodyErrs); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.ENDWHILE, "expected 'ENDWHILE'"); err != nil {
		return nil, err
	}
	return ast.WhileCmd{Cond: cond, Body: body}, nil
}

func (parser *Parser) repeatCommand() (ast.Command, error) {
	body, bodyErrs := parser.commands(token.UNTIL)
	if err := firstOf(bodyErrs); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.UNTIL, "expected 'UNTIL'"); err != nil {
		return nil, err
	}
	cond, err := parser.condition()
	if err != nil {
		return nil, err
	}
	// UNTIL names the exit condition; DoCmd holds the condition under which
	// the body repeats, so the operator is negated.
	cond.Op = map[ast.RelOp]ast.RelOp{
		ast.EQ: ast.NEQ, ast.NEQ: ast.EQ,
		ast.LT: ast.GEQ, ast.GEQ: ast.LT,
		ast.GT: ast.LEQ, ast.LEQ: ast.GT,
	}[cond.Op]
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after 'REPEAT ... UNTIL cond'"); err != nil {
		return nil, err
	}
	return ast.DoCmd{Body: body, Cond: cond}, nil
}

func (parser *Parser) forCommand() (ast.Command, error) {
	counter, err := parser.consume(token.IDENTIFIER, "expected loop counter name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.FROM, "expected 'FROM'"); err != nil {
		return nil, err
	}
	from, err := parser.value()
	if err != nil {
		return nil, err
	}

	var ascending bool
	switch {
	case parser.isMatch([]token.TokenType{token.TO}):
		ascending = true
	case parser.isMatch([]token.TokenType{token.DOWNTO}):
		ascending = false
	default:
		currentToken := parser.peek()
		return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "expected 'TO' or 'DOWNTO'")
	}

	to, err := parser.value()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.DO, "expected 'DO'"); err != nil {
		return nil, err
	}
	body, bodyErrs := parser.commands(token.ENDFOR)
	if err := firstOf(bodyErrs); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.ENDFOR, "expected 'ENDFOR'"); err != nil {
		return nil, err
	}

	return ast.ForCmd{Counter: counter.Lexeme, Ascending: ascending, From: from, To: to, Body: body}, nil
}

func (parser *Parser) readCommand() (ast.Command, error) {
	target, err := parser.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after READ"); err != nil {
		return nil, err
	}
	return ast.ReadCmd{Target: target}, nil
}

func (parser *Parser) writeCommand() (ast.Command, error) {
	val, err := parser.value()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after WRITE"); err != nil {
		return nil, err
	}
	return ast.WriteCmd{Value: val}, nil
}

func (parser *Parser) assignCommand() (ast.Command, error) {
	target, err := parser.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.ASSIGN, "expected ':=' in assignment"); err != nil {
		return nil, err
	}
	expr, err := parser.expr()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "expected ';' after assignment"); err != nil {
		return nil, err
	}
	return ast.AssignCmd{Target: target, Expr: expr}, nil
}

// expr parses "value [ op value ]" — this language has no operator
// precedence or chaining; an arithmetic expression is always exactly one
// binary operation (or none at all).
func (parser *Parser) expr() (ast.Expression, error) {
	left, err := parser.value()
	if err != nil {
		return nil, err
	}
	if !parser.isMatch(arithmeticTokenTypes) {
		return ast.SimpleExpr{Value: left}, nil
	}
	op := arithmeticOps[parser.previous().TokenType]
	right, err := parser.value()
	if err != nil {
		return nil, err
	}
	return ast.CompoundExpr{Left: left, Op: op, Right: right}, nil
}

// condition parses "value relop value", the guard of If/While/Repeat.
func (parser *Parser) condition() (ast.Condition, error) {
	left, err := parser.value()
	if err != nil {
		return ast.Condition{}, err
	}
	if !parser.isMatch(relationalTokenTypes) {
		currentToken := parser.peek()
		return ast.Condition{}, CreateSyntaxError(currentToken.Line, currentToken.Column, "expected a relational operator")
	}
	op := relationalOps[parser.previous().TokenType]
	right, err := parser.value()
	if err != nil {
		return ast.Condition{}, err
	}
	return ast.Condition{Left: left, Op: op, Right: right}, nil
}

// value parses "INT | identifier".
func (parser *Parser) value() (ast.Value, error) {
	if parser.isMatch([]token.TokenType{token.INT}) {
		return ast.NumValue{Value: parser.previous().Literal.(int64)}, nil
	}
	if parser.checkType(token.IDENTIFIER) {
		return parser.identifier()
	}
	currentToken := parser.peek()
	return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, fmt.Sprintf("expected a number or identifier, got %q", currentToken.Lexeme))
}

// identifier parses "IDENT | IDENT '[' IDENT ']' | IDENT '[' INT ']'".
func (parser *Parser) identifier() (ast.Identifier, error) {
	name, err := parser.consume(token.IDENTIFIER, "expected an identifier")
	if err != nil {
		return nil, err
	}
	if !parser.isMatch([]token.TokenType{token.LBRACKET}) {
		return ast.VarAccess{Name_: name.Lexeme}, nil
	}

	var id ast.Identifier
	switch {
	case parser.isMatch([]token.TokenType{token.INT}):
		id = ast.ArrConstAccess{Name_: name.Lexeme, IndexLiteral: parser.previous().Literal.(int64)}
	case parser.isMatch([]token.TokenType{token.IDENTIFIER}):
		id = ast.ArrAccess{Name_: name.Lexeme, IndexVarName: parser.previous().Lexeme}
	default:
		currentToken := parser.peek()
		return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "expected an index (identifier or number) inside '[...]'")
	}
	if _, err := parser.consume(token.RBRACKET, "expected ']' after array index"); err != nil {
		return nil, err
	}
	return id, nil
}

// firstOf returns the first error in errs, or nil if errs is empty —
// pulled out so a sub-block's already-collected errors can short-circuit
// its enclosing command's parse instead of papering over a malformed body
// with a misleading "expected 'ENDIF'"-style message.
func firstOf(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
