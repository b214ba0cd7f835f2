/**
 * Copyright (c) 2019, The Artemis Authors.
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

package rules

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	messages "github.com/botobag/bookshelf/graphql/internal/validator"
	"github.com/botobag/bookshelf/graphql/validator"
)

// NoFragmentCycles implements the "Fragment spreads must not form cycles" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragment-spreads-must-not-form-cycles.
type NoFragmentCycles struct{}

// CheckFragment implements validator.FragmentRule.
func (rule NoFragmentCycles) CheckFragment(
	ctx *validator.ValidationContext,
	fragmentInfo *validator.FragmentInfo) validator.NextCheckAction {

	if !ctx.VisitedFragmentNames[fragmentInfo.Name()] {
		detector := &fragmentCycleDetector{
			ctx:                   ctx,
			spreadPathIndexByName: map[string]int{},
		}
		detector.detect(fragmentInfo.Definition())
	}
	return validator.SkipCheckForChildNodes
}

// fragmentCycleDetector does a depth-first search over fragment spreads. Fragments that have been
// searched are recorded in ctx.VisitedFragmentNames so that each fragment is only searched once
// per document and each cycle is reported once.
type fragmentCycleDetector struct {
	ctx *validator.ValidationContext

	// Spreads on the path from the fragment where the search starts
	spreadPath []*ast.FragmentSpread

	// Position in spreadPath where the spreads in the named fragment are pushed
	spreadPathIndexByName map[string]int
}

func (detector *fragmentCycleDetector) detect(fragment *ast.FragmentDefinition) {
	ctx := detector.ctx
	fragmentName := fragment.Name.Value()
	ctx.VisitedFragmentNames[fragmentName] = true

	spreads := validator.FragmentSpreads(fragment.SelectionSet)
	if len(spreads) == 0 {
		return
	}

	detector.spreadPathIndexByName[fragmentName] = len(detector.spreadPath)

	for _, spread := range spreads {
		spreadName := spread.Name.Value()
		cycleIndex, inPath := detector.spreadPathIndexByName[spreadName]

		detector.spreadPath = append(detector.spreadPath, spread)
		if !inPath {
			spreadFragment := ctx.Fragment(spreadName)
			if spreadFragment != nil && !ctx.VisitedFragmentNames[spreadName] {
				detector.detect(spreadFragment)
			}
		} else {
			cyclePath := detector.spreadPath[cycleIndex:]
			via := make([]string, len(cyclePath)-1)
			nodes := make([]ast.Node, len(cyclePath))
			for i, s := range cyclePath {
				if i < len(via) {
					via[i] = s.Name.Value()
				}
				nodes[i] = s
			}
			ctx.ReportError(
				messages.CycleErrorMessage(spreadName, via),
				graphql.ErrorLocationsOfASTNodes(nodes...),
			)
		}
		detector.spreadPath = detector.spreadPath[:len(detector.spreadPath)-1]
	}

	delete(detector.spreadPathIndexByName, fragmentName)
}
