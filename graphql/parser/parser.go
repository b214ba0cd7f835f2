/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package parser builds an ast.Document from a GraphQL source.
package parser

import (
	"fmt"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/lexer"
	"github.com/botobag/bookshelf/graphql/token"
)

// ParseOptions configures Parse.
type ParseOptions struct {
	// Name given to the source in error messages
	SourceName string
}

// Parse parses an executable document. Errors are *graphql.Error of kind ErrKindSyntax.
func Parse(body string, options ...ParseOptions) (ast.Document, error) {
	config := &token.SourceConfig{Body: body}
	if len(options) > 0 {
		config.Name = options[0].SourceName
	}
	return ParseSource(token.NewSource(config))
}

// ParseSource parses an executable document from source.
func ParseSource(source *token.Source) (ast.Document, error) {
	p := &parser{lexer: lexer.New(source)}
	definitions, err := p.parseDocument()
	if err != nil {
		return ast.Document{}, err
	}
	return ast.Document{
		Source:      source,
		Definitions: definitions,
	}, nil
}

// ParseValue parses a value literal such as `[1, "two"]`. Variables are not allowed.
func ParseValue(body string) (ast.Value, error) {
	p := &parser{lexer: lexer.New(token.NewSource(&token.SourceConfig{Body: body}))}
	value, err := p.parseValueLiteral(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KindEOF); err != nil {
		return nil, err
	}
	return value, nil
}

type parser struct {
	lexer *lexer.Lexer
}

func (p *parser) token() *token.Token {
	return p.lexer.Token()
}

// peek returns true if the next token is of the given kind.
func (p *parser) peek(kind token.Kind) (bool, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return false, err
	}
	return next.Kind == kind, nil
}

// skip advances past the next token if it is of the given kind and reports whether it did.
func (p *parser) skip(kind token.Kind) (bool, error) {
	match, err := p.peek(kind)
	if err != nil || !match {
		return false, err
	}
	_, err = p.lexer.Advance()
	return err == nil, err
}

// expect advances past the next token which must be of the given kind.
func (p *parser) expect(kind token.Kind) (*token.Token, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	if next.Kind != kind {
		return nil, p.errorAt(next, "Expected %s, found %s.", kind, next.Description())
	}
	return p.lexer.Advance()
}

// expectKeyword advances past the next token which must be a name with the given value.
func (p *parser) expectKeyword(value string) (*token.Token, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	if next.Kind != token.KindName || next.Value != value {
		return nil, p.errorAt(next, `Expected "%s", found %s.`, value, next.Description())
	}
	return p.lexer.Advance()
}

// unexpected reports the next token as unexpected.
func (p *parser) unexpected() error {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return err
	}
	return p.errorAt(next, "Unexpected %s.", next.Description())
}

func (p *parser) errorAt(tok *token.Token, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(p.lexer.Source(), tok.Location, fmt.Sprintf(format, args...))
}

// Document : Definition+
//
// The lexer starts at <SOF>.
func (p *parser) parseDocument() ([]ast.Definition, error) {
	var definitions []ast.Definition
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if eof, err := p.skip(token.KindEOF); err != nil {
			return nil, err
		} else if eof {
			return definitions, nil
		}
	}
}

// Definition : OperationDefinition | FragmentDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}

	switch next.Kind {
	case token.KindLeftBrace:
		return p.parseOperationDefinition()

	case token.KindName:
		switch next.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}
	}

	return nil, p.unexpected()
}

// OperationDefinition :
//   - SelectionSet
//   - OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}

	if next.Kind == token.KindLeftBrace {
		selectionSet, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{
			Start:        next,
			Operation:    ast.OperationTypeQuery,
			SelectionSet: selectionSet,
		}, nil
	}

	start, err := p.lexer.Advance()
	if err != nil {
		return nil, err
	}

	op := &ast.OperationDefinition{
		Start:     start,
		Operation: ast.OperationType(start.Value),
	}

	if isName, err := p.peek(token.KindName); err != nil {
		return nil, err
	} else if isName {
		if op.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if op.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
		return nil, err
	}
	if op.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if op.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return op, nil
}

// VariableDefinitions : ( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if open, err := p.skip(token.KindLeftParen); err != nil || !open {
		return nil, err
	}

	var definitions []*ast.VariableDefinition
	for {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if closed, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if closed {
			return definitions, nil
		}
	}
}

// VariableDefinition : Variable : Type DefaultValue? Directives[Const]?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	definition := &ast.VariableDefinition{
		Variable: variable,
	}

	if definition.Type, err = p.parseType(); err != nil {
		return nil, err
	}

	if hasDefault, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if hasDefault {
		if definition.DefaultValue, err = p.parseValueLiteral(true); err != nil {
			return nil, err
		}
	}

	if definition.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}

	return definition, nil
}

// Variable : $ Name
func (p *parser) parseVariable() (*ast.Variable, error) {
	dollar, err := p.expect(token.KindDollar)
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{
		Dollar: dollar,
		Name:   name,
	}, nil
}

// SelectionSet : { Selection+ }
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var selectionSet ast.SelectionSet
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selectionSet = append(selectionSet, selection)

		if closed, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if closed {
			return selectionSet, nil
		}
	}
}

// Selection : Field | FragmentSpread | InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	if spread, err := p.peek(token.KindSpread); err != nil {
		return nil, err
	} else if spread {
		return p.parseFragment()
	}
	return p.parseField()
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
func (p *parser) parseField() (*ast.Field, error) {
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	field := &ast.Field{}
	if aliased, err := p.skip(token.KindColon); err != nil {
		return nil, err
	} else if aliased {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	} else {
		field.Name = nameOrAlias
	}

	if field.Arguments, err = p.parseArguments(false); err != nil {
		return nil, err
	}
	if field.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}

	if hasSelectionSet, err := p.peek(token.KindLeftBrace); err != nil {
		return nil, err
	} else if hasSelectionSet {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return field, nil
}

// Arguments[Const] : ( Argument[?Const]+ )
func (p *parser) parseArguments(isConst bool) (ast.Arguments, error) {
	if open, err := p.skip(token.KindLeftParen); err != nil || !open {
		return nil, err
	}

	var args ast.Arguments
	for {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KindColon); err != nil {
			return nil, err
		}
		value, err := p.parseValueLiteral(isConst)
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.Argument{
			Name:  name,
			Value: value,
		})

		if closed, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if closed {
			return args, nil
		}
	}
}

// FragmentSpread : ... FragmentName Directives?
//
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (ast.Selection, error) {
	spread, err := p.expect(token.KindSpread)
	if err != nil {
		return nil, err
	}

	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}

	if next.Kind == token.KindName && next.Value != "on" {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{
			Spread:     spread,
			Name:       name,
			Directives: directives,
		}, nil
	}

	fragment := &ast.InlineFragment{
		Spread: spread,
	}

	if next.Kind == token.KindName {
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		if fragment.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}

	if fragment.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if fragment.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return fragment, nil
}

// FragmentDefinition : fragment FragmentName TypeCondition Directives? SelectionSet
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	start, err := p.expectKeyword("fragment")
	if err != nil {
		return nil, err
	}

	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	if next.Kind == token.KindName && next.Value == "on" {
		return nil, p.unexpected()
	}

	fragment := &ast.FragmentDefinition{
		Start: start,
	}

	if fragment.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if fragment.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}
	if fragment.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if fragment.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return fragment, nil
}

// Directives[Const] : Directive[?Const]+
func (p *parser) parseDirectives(isConst bool) (ast.Directives, error) {
	var directives ast.Directives
	for {
		at, err := p.skip(token.KindAt)
		if err != nil {
			return nil, err
		}
		if !at {
			return directives, nil
		}

		directive := &ast.Directive{
			At: p.token(),
		}
		if directive.Name, err = p.parseName(); err != nil {
			return nil, err
		}
		if directive.Arguments, err = p.parseArguments(isConst); err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
}

// Value[Const] :
//   - [~Const] Variable
//   - IntValue
//   - FloatValue
//   - StringValue
//   - BooleanValue
//   - NullValue
//   - EnumValue
//   - ListValue[?Const]
//   - ObjectValue[?Const]
func (p *parser) parseValueLiteral(isConst bool) (ast.Value, error) {
	next, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}

	switch next.Kind {
	case token.KindLeftBracket:
		return p.parseList(isConst)

	case token.KindLeftBrace:
		return p.parseObject(isConst)

	case token.KindInt:
		_, err := p.lexer.Advance()
		return &ast.IntValue{Token: next}, err

	case token.KindFloat:
		_, err := p.lexer.Advance()
		return &ast.FloatValue{Token: next}, err

	case token.KindString, token.KindBlockString:
		_, err := p.lexer.Advance()
		return &ast.StringValue{Token: next}, err

	case token.KindName:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		switch next.Value {
		case "true", "false":
			return &ast.BooleanValue{Token: next}, nil
		case "null":
			return &ast.NullValue{Token: next}, nil
		}
		return &ast.EnumValue{Token: next}, nil

	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}
	}

	return nil, p.unexpected()
}

// ListValue[Const] : [ ] | [ Value[?Const]+ ]
func (p *parser) parseList(isConst bool) (ast.Value, error) {
	start, err := p.expect(token.KindLeftBracket)
	if err != nil {
		return nil, err
	}

	list := &ast.ListValue{
		Start: start,
	}
	for {
		if closed, err := p.skip(token.KindRightBracket); err != nil {
			return nil, err
		} else if closed {
			return list, nil
		}

		value, err := p.parseValueLiteral(isConst)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, value)
	}
}

// ObjectValue[Const] : { } | { ObjectField[?Const]+ }
func (p *parser) parseObject(isConst bool) (ast.Value, error) {
	start, err := p.expect(token.KindLeftBrace)
	if err != nil {
		return nil, err
	}

	object := &ast.ObjectValue{
		Start: start,
	}
	for {
		if closed, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if closed {
			return object, nil
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KindColon); err != nil {
			return nil, err
		}
		value, err := p.parseValueLiteral(isConst)
		if err != nil {
			return nil, err
		}
		object.Fields = append(object.Fields, &ast.ObjectField{
			Name:  name,
			Value: value,
		})
	}
}

// Type : NamedType | ListType | NonNullType
func (p *parser) parseType() (ast.Type, error) {
	t, err := p.parseNullableType()
	if err != nil {
		return nil, err
	}

	if nonNull, err := p.skip(token.KindBang); err != nil {
		return nil, err
	} else if nonNull {
		return &ast.NonNullType{Type: t}, nil
	}

	return t, nil
}

func (p *parser) parseNullableType() (ast.Type, error) {
	isList, err := p.peek(token.KindLeftBracket)
	if err != nil {
		return nil, err
	}
	if !isList {
		return p.parseNamedType()
	}

	start, err := p.lexer.Advance()
	if err != nil {
		return nil, err
	}
	itemType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KindRightBracket); err != nil {
		return nil, err
	}
	return &ast.ListType{
		Start:    start,
		ItemType: itemType,
	}, nil
}

// NamedType : Name
func (p *parser) parseNamedType() (*ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{Name: name}, nil
}

// Name : /[_A-Za-z][_0-9A-Za-z]*/
func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{Token: tok}, nil
}
