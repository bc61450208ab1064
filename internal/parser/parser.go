// Package parser implements tnac's recursive-descent, Pratt-precedence
// parser: tokens -> AST, with sema scope/symbol bookkeeping interleaved
// and structured error-node recovery instead of panic/recover.
//
// The overall shape (a cursor over a token slice, match/check/consume/
// advance helpers, a statement-then-expression dispatch) follows the
// teacher's internal/parser/parser.go; the precedence table, grammar
// rules, and error-node recovery strategy are grounded in spec.md
// §4.2 and original_source/tnac_front/src/parser/parser.cpp.
package parser

import (
	"fmt"

	"tnac/internal/ast"
	"tnac/internal/lexer"
	"tnac/internal/sema"
	"tnac/internal/token"
)

// precedence levels, lowest to highest, per spec.md §4.2:
// LogicalOr < LogicalAnd < Equality < Relational < BitOr < BitXor <
// BitAnd < Additive < Multiplicative < Power < Unary.
const (
	precNone = iota
	precLogicalOr
	precLogicalAnd
	precEquality
	precRelational
	precBitOr
	precBitXor
	precBitAnd
	precAdditive
	precMultiplicative
	precPower
)

var binPrec = map[token.Kind]int{
	token.OrOr:    precLogicalOr,
	token.AndAnd:  precLogicalAnd,
	token.Eq:      precEquality,
	token.NotEq:   precEquality,
	token.Lt:      precRelational,
	token.LtEq:    precRelational,
	token.Gt:      precRelational,
	token.GtEq:    precRelational,
	token.Pipe:    precBitOr,
	token.Caret:   precBitXor,
	token.Amp:     precBitAnd,
	token.Plus:    precAdditive,
	token.Minus:   precAdditive,
	token.Star:    precMultiplicative,
	token.Slash:   precMultiplicative,
	token.Percent: precMultiplicative,
	token.Pow:     precPower,
	token.Root:    precPower,
}

var binOps = map[token.Kind]ast.BinaryOp{
	token.Plus: ast.BAdd, token.Minus: ast.BSub, token.Star: ast.BMul,
	token.Slash: ast.BDiv, token.Percent: ast.BMod, token.Pow: ast.BPow,
	token.Root: ast.BRoot, token.Amp: ast.BAnd, token.Pipe: ast.BOr,
	token.Caret: ast.BXor, token.Eq: ast.BCmpE, token.NotEq: ast.BCmpNE,
	token.Lt: ast.BCmpL, token.LtEq: ast.BCmpLE, token.Gt: ast.BCmpG,
	token.GtEq: ast.BCmpGE, token.AndAnd: ast.BLogAnd, token.OrOr: ast.BLogOr,
}

// Parser is a recursive-descent parser with one-token lookahead
// supplied by the lexer.
type Parser struct {
	lex  *lexer.Lexer
	sema *sema.Table
	file string

	Errors []error
}

func New(file, src string, symtab *sema.Table) *Parser {
	return &Parser{lex: lexer.New(file, src), sema: symtab, file: file}
}

func (p *Parser) peek() token.Token { return p.lex.Peek() }
func (p *Parser) advance() token.Token { return p.lex.Next() }

func (p *Parser) check(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.reportError(msg)
	return p.peek()
}

func (p *Parser) reportError(msg string) *ast.Error {
	tok := p.peek()
	loc := tok.Loc
	node := ast.NewError(loc, msg, tok)
	p.Errors = append(p.Errors, fmt.Errorf("%s: %s", loc, msg))
	return node
}

// resync advances past tokens until it finds one of ':' ';' ')' '}'
// ']' or Eol, per spec.md §4.2's recovery strategy.
func (p *Parser) resync() {
	for {
		switch p.peek().Kind {
		case token.ExprSep, token.Semi, token.RParen, token.RBrace, token.RBracket, token.Eol:
			return
		}
		p.advance()
	}
}

// Parse consumes the whole token stream into a Root node.
func (p *Parser) Parse() *ast.Root {
	var exprs []ast.Node
	for !p.check(token.Eol) {
		exprs = append(exprs, p.topLevel())
		p.match(token.ExprSep)
		p.match(token.Semi)
	}
	return ast.NewRoot(exprs)
}

func (p *Parser) topLevel() ast.Node {
	if p.check(token.KwImport) {
		return p.importDirective()
	}
	if p.check(token.Command) {
		return p.command()
	}
	return p.expression()
}

func (p *Parser) importDirective() ast.Node {
	loc := p.advance().Loc // consume _import
	path := p.consume(token.String, "expected a string path after _import")
	return ast.NewImportDir(loc, path.Value)
}

func (p *Parser) command() ast.Node {
	tok := p.advance()
	var args []token.Token
	for !p.check(token.ExprSep) && !p.check(token.Semi) && !p.check(token.Eol) {
		args = append(args, p.advance())
	}
	// The parser does not dispatch commands (internal/driver recognises
	// a line that opens with one before parsing). Here the command and
	// its arguments are consumed and dropped, and a Result node stands
	// in for them so Root's expr list stays uniform.
	return ast.NewResult(tok.Loc)
}

// expression ::= decl | assign
func (p *Parser) expression() ast.Node {
	if p.check(token.Identifier) {
		if n := p.tryDecl(); n != nil {
			return n
		}
	}
	return p.assign()
}

// tryDecl detects `identifier '=' expr` (var decl, only when the name
// is not already bound in the current scope) or `identifier '(' params
// ')' body` (function decl). Returns nil if this isn't a declaration,
// leaving the lexer position unchanged (the lexer state is copied
// before looking ahead and restored when no declaration is found).
func (p *Parser) tryDecl() ast.Node {
	nameTok := p.peek()
	// We need one token of extra lookahead beyond what Lexer.Peek
	// offers; scan the identifier then decide, relying on the grammar
	// fact that only '=' (not '==') or '(' immediately following an
	// as-yet-unbound identifier starts a declaration.
	save := *p.lex
	p.advance() // identifier
	switch {
	case p.check(token.Assign):
		if _, bound := p.sema.ScopedLookup(nameTok.Value); bound {
			*p.lex = save
			return nil
		}
		p.advance() // '='
		init := p.assign()
		p.sema.AddVariable(nameTok.Value)
		return ast.NewDeclExpr(nameTok.Loc, ast.NewVarDecl(nameTok.Loc, nameTok.Value, init))
	case p.check(token.LParen):
		*p.lex = save
		return p.tryFuncDecl(nameTok)
	default:
		*p.lex = save
		return nil
	}
}

func (p *Parser) tryFuncDecl(nameTok token.Token) ast.Node {
	if _, bound := p.sema.ScopedLookup(nameTok.Value); bound {
		return nil // already bound: '(' starts a call, not a decl
	}
	save := *p.lex
	p.advance() // identifier
	p.advance() // '('
	var params []*ast.ParamDecl
	idx := 0
	for !p.check(token.RParen) && !p.check(token.Eol) {
		if !p.check(token.Identifier) {
			*p.lex = save
			return nil
		}
		pt := p.advance()
		params = append(params, ast.NewParamDecl(pt.Loc, pt.Value, idx))
		idx++
		if !p.check(token.Comma) {
			break
		}
		p.advance() // ','
	}
	if !p.check(token.RParen) {
		*p.lex = save
		return nil
	}
	p.advance() // ')'
	p.sema.OpenScope(sema.Function)
	for _, prm := range params {
		p.sema.AddParameter(prm.Name, prm.Index)
	}
	body := p.blockOrSingle()
	p.sema.CloseScope()
	return ast.NewDeclExpr(nameTok.Loc, ast.NewFuncDecl(nameTok.Loc, nameTok.Value, params, body))
}

// blockOrSingle parses either `{ expr* }` or a ':'-separated list of
// expressions ended by ';' (or Eol), matching how the teacher's
// function() parses bodies but generalized to tnac's
// expression-oriented grammar.
func (p *Parser) blockOrSingle() *ast.Scope {
	loc := p.peek().Loc
	var exprs []ast.Node
	if p.match(token.LBrace) {
		for !p.check(token.RBrace) && !p.check(token.Eol) {
			exprs = append(exprs, p.topLevel())
			p.match(token.ExprSep)
		}
		p.consume(token.RBrace, "expected '}'")
		return ast.NewScope(loc, exprs)
	}
	for !p.check(token.Semi) && !p.check(token.Eol) {
		exprs = append(exprs, p.topLevel())
		if !p.match(token.ExprSep) {
			break
		}
	}
	p.match(token.Semi)
	return ast.NewScope(loc, exprs)
}

// assign ::= binary ('=' assign)?
func (p *Parser) assign() ast.Node {
	left := p.binary(precLogicalOr)
	if p.check(token.Assign) {
		ident, ok := left.(*ast.Identifier)
		if !ok {
			errNode := p.reportError("left side of assignment must be an identifier")
			ast.Attach(errNode, left)
			return errNode
		}
		loc := p.advance().Loc
		rhs := p.assign()
		return ast.NewAssign(loc, ident, rhs)
	}
	return left
}

func (p *Parser) binary(minPrec int) ast.Node {
	left := p.unary()
	for {
		prec, ok := binPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		right := p.binary(prec + 1)
		left = ast.NewBinary(opTok.Loc, binOps[opTok.Kind], left, right)
	}
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Plus: ast.UPlus, token.Minus: ast.UNeg, token.Tilde: ast.UBNeg,
	token.Bang: ast.ULNot, token.Quest: ast.UQuest,
}

// unary ::= (+ | - | ~ | ! | ?) unary | call
func (p *Parser) unary() ast.Node {
	if op, ok := unaryOps[p.peek().Kind]; ok {
		tok := p.advance()
		operand := p.unary()
		return ast.NewUnary(tok.Loc, op, operand)
	}
	return p.call()
}

// call ::= primary ( '(' args ')' | '.' name )*
func (p *Parser) call() ast.Node {
	expr := p.primary()
	for {
		switch {
		case p.check(token.LParen):
			loc := p.advance().Loc
			var args []ast.Node
			for !p.check(token.RParen) && !p.check(token.Eol) {
				args = append(args, p.assign())
				if !p.match(token.Comma) {
					break
				}
			}
			p.consume(token.RParen, "expected ')'")
			expr = ast.NewCall(loc, expr, args)
		case p.check(token.Dot):
			loc := p.advance().Loc
			name := p.consume(token.Identifier, "expected a member name after '.'")
			expr = ast.NewDot(loc, expr, name.Value)
		default:
			return expr
		}
	}
}

var typedKeywords = map[token.Kind]ast.TypeName{
	token.KwBool: ast.TBool, token.KwInt: ast.TInt, token.KwFloat: ast.TFloat,
	token.KwFraction: ast.TFraction, token.KwComplex: ast.TComplex,
}

// primary ::= literal | identifier | typed | anon-fn | '(' expr ')' |
//             '|' expr '|' | '[' args ']' | cond | result | ret
func (p *Parser) primary() ast.Node {
	tok := p.peek()
	switch {
	case tok.IsAny(token.IntDec, token.IntBin, token.IntOct, token.IntHex):
		p.advance()
		return ast.NewLiteral(tok, ast.LitInt, intBase(tok.Kind))
	case tok.Is(token.Float):
		p.advance()
		return ast.NewLiteral(tok, ast.LitFloat, 0)
	case tok.Is(token.KwTrue), tok.Is(token.KwFalse):
		p.advance()
		return ast.NewLiteral(tok, ast.LitBool, 0)
	case tok.Is(token.KwI):
		p.advance()
		return ast.NewLiteral(tok, ast.LitI, 0)
	case tok.Is(token.KwPi):
		p.advance()
		return ast.NewLiteral(tok, ast.LitPi, 0)
	case tok.Is(token.KwE):
		p.advance()
		return ast.NewLiteral(tok, ast.LitE, 0)
	case tok.Is(token.String):
		p.advance()
		return ast.NewLiteral(tok, ast.LitString, 0)
	case tok.Is(token.KwResult):
		p.advance()
		return ast.NewResult(tok.Loc)
	case tok.Is(token.KwRet):
		p.advance()
		var val ast.Node
		if !p.check(token.ExprSep) && !p.check(token.Semi) && !p.check(token.Eol) && !p.check(token.RBrace) {
			val = p.assign()
		}
		return ast.NewRet(tok.Loc, val)
	case tok.Is(token.Identifier):
		p.advance()
		return ast.NewIdentifier(tok)
	case isTypedKeyword(tok.Kind):
		ty := typedKeywords[tok.Kind]
		p.advance()
		p.consume(token.LParen, "expected '(' after type constructor")
		var args []ast.Node
		for !p.check(token.RParen) && !p.check(token.Eol) {
			args = append(args, p.assign())
			if !p.match(token.Comma) {
				break
			}
		}
		p.consume(token.RParen, "expected ')'")
		return ast.NewTyped(tok.Loc, ty, args)
	case tok.Is(token.KwFunction):
		return p.anonFunc()
	case tok.Is(token.LParen):
		p.advance()
		inner := p.assign()
		p.consume(token.RParen, "expected ')'")
		return ast.NewParen(tok.Loc, inner)
	case tok.Is(token.Pipe):
		p.advance()
		inner := p.assign()
		p.consume(token.Pipe, "expected closing '|'")
		return ast.NewAbs(tok.Loc, inner)
	case tok.Is(token.LBracket):
		return p.arrayLiteral()
	case tok.Is(token.LBrace):
		return p.condOrScope()
	default:
		errNode := p.reportError("unexpected token " + tok.Kind.String())
		p.advance() // always make progress, even when the bad token is itself a resync point
		p.resync()
		return errNode
	}
}

func isTypedKeyword(k token.Kind) bool {
	_, ok := typedKeywords[k]
	return ok
}

// anonFunc parses `_fn (params) body` as an expression-position
// function literal, reusing the named-decl machinery with an empty
// name (the compiler synthesizes an anonymous IR function id for it).
func (p *Parser) anonFunc() ast.Node {
	loc := p.advance().Loc // '_fn'
	p.consume(token.LParen, "expected '(' after _fn")
	var params []*ast.ParamDecl
	idx := 0
	for !p.check(token.RParen) && !p.check(token.Eol) {
		pt := p.consume(token.Identifier, "expected parameter name")
		params = append(params, ast.NewParamDecl(pt.Loc, pt.Value, idx))
		idx++
		if !p.match(token.Comma) {
			break
		}
	}
	p.consume(token.RParen, "expected ')'")
	p.sema.OpenScope(sema.Function)
	for _, prm := range params {
		p.sema.AddParameter(prm.Name, prm.Index)
	}
	body := p.blockOrSingle()
	p.sema.CloseScope()
	return ast.NewFuncDecl(loc, "", params, body)
}

func intBase(k token.Kind) int {
	switch k {
	case token.IntBin:
		return 2
	case token.IntOct:
		return 8
	case token.IntHex:
		return 16
	default:
		return 10
	}
}

func (p *Parser) arrayLiteral() ast.Node {
	loc := p.advance().Loc // '['
	var elems []ast.Node
	for !p.check(token.RBracket) && !p.check(token.Eol) {
		elems = append(elems, p.assign())
		if !p.match(token.Comma) {
			break
		}
	}
	p.consume(token.RBracket, "expected ']'")
	return ast.NewArray(loc, elems)
}

// condOrScope disambiguates `{ selector } -> ...` (a conditional) from
// a plain `{ expr* }` scope block, and within conditionals the short
// `{ true, false }` form from the pattern-chain form.
func (p *Parser) condOrScope() ast.Node {
	loc := p.advance().Loc // '{'
	var exprs []ast.Node
	for !p.check(token.RBrace) && !p.check(token.Eol) {
		exprs = append(exprs, p.topLevel())
		if !p.match(token.ExprSep) {
			break
		}
	}
	p.consume(token.RBrace, "expected '}'")

	if !p.check(token.Arrow) {
		return ast.NewScope(loc, exprs)
	}
	p.advance() // '->'
	var selector ast.Node
	if len(exprs) == 1 {
		selector = exprs[0]
	} else {
		selector = ast.NewScope(loc, exprs)
	}

	if !p.check(token.LBrace) {
		return p.patternChain(loc, selector)
	}
	// Both the short `{ true, false }` body and a pattern's `{ guard }`
	// start with '{'; the only reliable signal is what follows the
	// matching close brace. A guard's close brace is always followed
	// by '->', a short-form body's never is.
	if p.braceFollowedByArrow() {
		return p.patternChain(loc, selector)
	}
	braceLoc := p.peek().Loc
	p.advance() // '{'
	var t, f ast.Node
	if !p.check(token.RBrace) {
		t = p.assign()
		if p.match(token.Comma) {
			if !p.check(token.RBrace) {
				f = p.assign()
			}
		}
	}
	p.consume(token.RBrace, "expected '}'")
	return ast.NewCond(loc, selector, ast.NewCondShort(braceLoc, t, f), nil)
}

// braceFollowedByArrow looks past a balanced '{' ... '}' (the cursor
// must be sitting on the opening '{') and reports whether an Arrow
// token immediately follows the matching close, without consuming
// anything — the lexer's position is always restored before return.
func (p *Parser) braceFollowedByArrow() bool {
	save := *p.lex
	defer func() { *p.lex = save }()

	depth := 0
	for {
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return p.check(token.Arrow)
			}
		case token.Eol:
			return false
		}
	}
}

func (p *Parser) patternChain(loc token.Location, selector ast.Node) ast.Node {
	var patterns []*ast.Pattern
	for p.check(token.LBrace) {
		patLoc := p.advance().Loc // '{'
		guard := p.matcher()
		p.consume(token.RBrace, "expected '}'")
		p.consume(token.Arrow, "expected '->' after pattern guard")
		var body []ast.Node
		for {
			body = append(body, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
		p.match(token.Semi)
		patterns = append(patterns, ast.NewPattern(patLoc, guard, body))
	}
	return ast.NewCond(loc, selector, nil, patterns)
}

func (p *Parser) matcher() *ast.Matcher {
	loc := p.peek().Loc
	if p.check(token.Identifier) && p.peek().Value == "default" {
		p.advance()
		return ast.NewMatcher(loc, ast.MDefault, 0, nil)
	}
	if op, ok := unaryOps[p.peek().Kind]; ok {
		p.advance()
		expr := p.assign()
		return ast.NewMatcher(loc, ast.MUnaryOp, ast.BinaryOp(op), expr)
	}
	relOp := ast.BCmpE
	if k, ok := binOps[p.peek().Kind]; ok && isRelOp(p.peek().Kind) {
		relOp = k
		p.advance()
	}
	expr := p.assign()
	return ast.NewMatcher(loc, ast.MRelExpr, relOp, expr)
}

func isRelOp(k token.Kind) bool {
	switch k {
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return true
	}
	return false
}
