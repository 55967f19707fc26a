package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/stage"
)

func TestRewriteAppendsTerminalSortWhenNoneGiven(t *testing.T) {
	stages := []stage.Stage{stage.CollectionSource{Path: []string{"users"}}}
	out := stage.Rewrite(stages)
	assert.Len(t, out, 2)
	last, ok := out[len(out)-1].(stage.Sort)
	assert.True(t, ok)
	assert.Len(t, last.Terms, 1)
	field, ok := last.Terms[0].Expr.(expr.Field)
	assert.True(t, ok)
	assert.Equal(t, document.NameField, field.Path)
}

func TestRewriteAppendsNameToExistingSortMissingIt(t *testing.T) {
	stages := []stage.Stage{
		stage.Sort{Terms: []stage.OrderTerm{{Expr: expr.FieldOf("score"), Direction: stage.Ascending}}},
	}
	out := stage.Rewrite(stages)
	assert.Len(t, out, 1)
	sorted := out[0].(stage.Sort)
	assert.Len(t, sorted.Terms, 2)
	field, ok := sorted.Terms[1].Expr.(expr.Field)
	assert.True(t, ok)
	assert.Equal(t, document.NameField, field.Path)
}

func TestRewriteIsIdentityWhenSortAlreadyTerminalWithName(t *testing.T) {
	stages := []stage.Stage{
		stage.Sort{Terms: []stage.OrderTerm{{Expr: expr.FieldOf(document.NameField), Direction: stage.Ascending}}},
	}
	out := stage.Rewrite(stages)
	assert.Len(t, out, 1)
	sorted := out[0].(stage.Sort)
	assert.Len(t, sorted.Terms, 1)
}

func TestRewriteInsertsSortBeforeLimitWhenNoneSeen(t *testing.T) {
	stages := []stage.Stage{
		stage.CollectionSource{Path: []string{"users"}},
		stage.Limit{N: 5},
	}
	out := stage.Rewrite(stages)
	assert.Len(t, out, 3)
	_, ok := out[1].(stage.Sort)
	assert.True(t, ok, "a Sort must be inserted immediately before Limit")
	_, ok = out[2].(stage.Limit)
	assert.True(t, ok)
}

func TestRewriteDoesNotDuplicateSortBeforeLimitWhenOneAlreadySeen(t *testing.T) {
	stages := []stage.Stage{
		stage.Sort{Terms: []stage.OrderTerm{{Expr: expr.FieldOf("score"), Direction: stage.Ascending}}},
		stage.Limit{N: 5},
	}
	out := stage.Rewrite(stages)
	assert.Len(t, out, 2)
}
