// Package parser parses PyMOL-style selection expressions into an AST.
//
// # Usage
//
//	expr, err := parser.Parse("byres (name CA and chain A)")
//	if err != nil {
//	    // handle *parser.ParseError
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for the selection
// grammar, lowest to highest binding:
//
//	expression → and_expr {("or"|"xor") and_expr}
//	and_expr   → not_expr {"and" not_expr}
//	not_expr   → "not" not_expr | prefix_expr
//	prefix_expr→ ("around"|"xaround"|"beyond") NUMBER prefix_expr
//	           | ("byres"|"bychain") prefix_expr
//	           | primary
//	primary    → "(" expression ")" | bare keyword | property predicate
//
// "or" and "xor" share the lowest precedence level and associate left;
// runs of the same boolean operator collapse into a single n-ary node.
package parser

import (
	"fmt"
	"strconv"

	"github.com/molviz-labs/molsel/pkg/token"
)

// Parser parses a selection expression into an AST.
type Parser struct {
	lexer  *Lexer
	token  token.Token // current token
	peek   token.Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given selection input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the input and returns the AST. On failure it returns the
// first syntax error and no AST, never a partial one.
func Parse(input string) (Expr, error) {
	p := NewParser(input)
	if p.check(token.EOF) {
		return nil, &ParseError{Pos: p.token.Pos, Message: ErrEmptyInput}
	}
	expr := p.parseExpression()
	if expr != nil && !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token.Literal))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Literal, t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Expression Parsing ----------

// parseExpression parses at the lowest precedence level (or/xor).
func (p *Parser) parseExpression() Expr {
	left := p.parseAndExpr()
	if left == nil {
		return nil
	}

	for p.check(token.OR) || p.check(token.XOR) {
		op := p.token.Type
		p.nextToken()
		right := p.parseAndExpr()
		if right == nil {
			return nil
		}
		if op == token.OR {
			if or, ok := left.(*OrExpr); ok {
				or.Exprs = append(or.Exprs, right)
			} else {
				left = &OrExpr{Exprs: []Expr{left, right}}
			}
		} else {
			if xor, ok := left.(*XorExpr); ok {
				xor.Exprs = append(xor.Exprs, right)
			} else {
				left = &XorExpr{Exprs: []Expr{left, right}}
			}
		}
	}
	return left
}

// parseAndExpr parses a conjunction.
func (p *Parser) parseAndExpr() Expr {
	left := p.parseNotExpr()
	if left == nil {
		return nil
	}

	for p.match(token.AND) {
		right := p.parseNotExpr()
		if right == nil {
			return nil
		}
		if and, ok := left.(*AndExpr); ok {
			and.Exprs = append(and.Exprs, right)
		} else {
			left = &AndExpr{Exprs: []Expr{left, right}}
		}
	}
	return left
}

// parseNotExpr parses a (possibly repeated) negation.
func (p *Parser) parseNotExpr() Expr {
	if p.match(token.NOT) {
		inner := p.parseNotExpr()
		if inner == nil {
			return nil
		}
		return &NotExpr{Expr: inner}
	}
	return p.parsePrefixExpr()
}

// parsePrefixExpr parses distance and expansion prefix operators.
func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case token.AROUND, token.XAROUND:
		exclusive := p.token.Type == token.XAROUND
		kw := p.token.Literal
		p.nextToken()
		radius, ok := p.parseRadius(kw)
		if !ok {
			return nil
		}
		inner := p.parsePrefixExpr()
		if inner == nil {
			return nil
		}
		return &AroundExpr{Radius: radius, Expr: inner, Exclusive: exclusive}

	case token.BEYOND:
		kw := p.token.Literal
		p.nextToken()
		radius, ok := p.parseRadius(kw)
		if !ok {
			return nil
		}
		inner := p.parsePrefixExpr()
		if inner == nil {
			return nil
		}
		return &BeyondExpr{Radius: radius, Expr: inner}

	case token.BYRES:
		p.nextToken()
		inner := p.parsePrefixExpr()
		if inner == nil {
			return nil
		}
		return &ByResExpr{Expr: inner}

	case token.BYCHAIN:
		p.nextToken()
		inner := p.parsePrefixExpr()
		if inner == nil {
			return nil
		}
		return &ByChainExpr{Expr: inner}

	default:
		return p.parsePrimary()
	}
}

// classKeywords maps bare classification keywords to their Class.
var classKeywords = map[token.TokenType]Class{
	token.PROTEIN:   ClassProtein,
	token.WATER:     ClassWater,
	token.SOLVENT:   ClassSolvent,
	token.BACKBONE:  ClassBackbone,
	token.SIDECHAIN: ClassSidechain,
	token.METAL:     ClassMetal,
	token.LIGAND:    ClassLigand,
	token.ORGANIC:   ClassOrganic,
	token.HYDROGEN:  ClassHydrogen,
	token.HEAVY:     ClassHeavy,
	token.POLARH:    ClassPolarHydrogen,
	token.NONPOLARH: ClassNonpolarHydrogen,
	token.HELIX:     ClassHelix,
	token.SHEET:     ClassSheet,
	token.TURN:      ClassTurn,
	token.LOOP:      ClassLoop,
}

// parsePrimary parses an atomic predicate or a parenthesized group.
func (p *Parser) parsePrimary() Expr {
	if class, ok := classKeywords[p.token.Type]; ok {
		p.nextToken()
		return &ClassExpr{Class: class}
	}

	switch p.token.Type {
	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return expr

	case token.ALL:
		p.nextToken()
		return &AllExpr{}

	case token.NONE:
		p.nextToken()
		return &NoneExpr{}

	case token.NAME:
		p.nextToken()
		values, ok := p.parseValueList("name")
		if !ok {
			return nil
		}
		return &NameExpr{Values: values}

	case token.RESN:
		p.nextToken()
		values, ok := p.parseValueList("resn")
		if !ok {
			return nil
		}
		return &ResnExpr{Values: values}

	case token.CHAIN:
		p.nextToken()
		value, ok := p.parseValue("chain")
		if !ok {
			return nil
		}
		return &ChainExpr{Value: value}

	case token.ELEM:
		p.nextToken()
		value, ok := p.parseValue("elem")
		if !ok {
			return nil
		}
		return &ElemExpr{Value: value}

	case token.RESI:
		p.nextToken()
		pred, ok := p.parseNumPred()
		if !ok {
			return nil
		}
		return &ResiExpr{Pred: pred}

	case token.INDEX:
		p.nextToken()
		pred, ok := p.parseNumPred()
		if !ok {
			return nil
		}
		return &IndexExpr{Pred: pred}

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Literal, "a selection term"))
		return nil
	}
}

// parseValueList parses one or more values joined by '+'.
func (p *Parser) parseValueList(keyword string) ([]string, bool) {
	first, ok := p.parseValue(keyword)
	if !ok {
		return nil, false
	}
	values := []string{first}
	for p.match(token.PLUS) {
		v, ok := p.parseValue(keyword)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// parseValue parses a single word or number value.
func (p *Parser) parseValue(keyword string) (string, bool) {
	if p.check(token.IDENT) || p.check(token.NUMBER) {
		v := p.token.Literal
		p.nextToken()
		return v, true
	}
	p.addError(fmt.Sprintf(ErrExpectedValue, keyword))
	return "", false
}

// parseNumPred parses an exact, range, or relational numeric predicate.
func (p *Parser) parseNumPred() (NumPred, bool) {
	switch p.token.Type {
	case token.EQEQ, token.GE, token.LE, token.GT, token.LT:
		op := relOps[p.token.Type]
		p.nextToken()
		n, ok := p.parseInt()
		if !ok {
			return NumPred{}, false
		}
		return NumPred{Op: op, Value: n}, true

	case token.NUMBER:
		low, ok := p.parseInt()
		if !ok {
			return NumPred{}, false
		}
		if p.match(token.MINUS) {
			high, ok := p.parseInt()
			if !ok {
				return NumPred{}, false
			}
			return NumPred{Op: CmpRange, Low: low, High: high}, true
		}
		return NumPred{Op: CmpEQ, Value: low}, true

	default:
		p.addError(fmt.Sprintf(ErrExpectedInteger, p.token.Literal))
		return NumPred{}, false
	}
}

// relOps maps relational operator tokens to comparison forms.
var relOps = map[token.TokenType]CompareOp{
	token.EQEQ: CmpEQ,
	token.GE:   CmpGE,
	token.LE:   CmpLE,
	token.GT:   CmpGT,
	token.LT:   CmpLT,
}

// parseInt parses an integer literal.
func (p *Parser) parseInt() (int, bool) {
	if !p.check(token.NUMBER) {
		p.addError(fmt.Sprintf(ErrExpectedInteger, p.token.Literal))
		return 0, false
	}
	n, err := strconv.Atoi(p.token.Literal)
	if err != nil {
		p.addError(fmt.Sprintf(ErrExpectedInteger, p.token.Literal))
		return 0, false
	}
	p.nextToken()
	return n, true
}

// parseRadius parses a non-negative radius following a distance keyword.
func (p *Parser) parseRadius(keyword string) (float64, bool) {
	if !p.check(token.NUMBER) {
		p.addError(fmt.Sprintf(ErrExpectedRadius, keyword))
		return 0, false
	}
	r, err := strconv.ParseFloat(p.token.Literal, 64)
	if err != nil {
		p.addError(fmt.Sprintf(ErrExpectedRadius, keyword))
		return 0, false
	}
	p.nextToken()
	return r, true
}
