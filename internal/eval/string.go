package eval

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func init() {
	register("byte_length", byteLength)
	register("char_length", unaryString(func(s string) (value.Value, error) {
		if !utf8.ValidString(s) {
			return value.Value{}, typeError("char_length: ill-formed UTF-8")
		}
		return value.Int(int64(utf8.RuneCountInString(s))), nil
	}))
	register("reverse", unaryString(reverseString))
	register("to_lower", unaryString(func(s string) (value.Value, error) {
		if !utf8.ValidString(s) {
			return value.Value{}, typeError("to_lower: ill-formed UTF-8")
		}
		return value.String(lowerCaser.String(s)), nil
	}))
	register("to_upper", unaryString(func(s string) (value.Value, error) {
		if !utf8.ValidString(s) {
			return value.Value{}, typeError("to_upper: ill-formed UTF-8")
		}
		return value.String(upperCaser.String(s)), nil
	}))
	register("trim", unaryString(func(s string) (value.Value, error) {
		if !utf8.ValidString(s) {
			return value.Value{}, typeError("trim: ill-formed UTF-8")
		}
		return value.String(strings.TrimSpace(s)), nil
	}))
	register("str_concat", strConcat)
	register("like", likeFunc)
	register("regex_contains", regexFunc(false))
	register("regex_match", regexFunc(true))
	register("str_contains", binaryStringPredicate("str_contains", strings.Contains))
	register("starts_with", binaryStringPredicate("starts_with", strings.HasPrefix))
	register("ends_with", binaryStringPredicate("ends_with", strings.HasSuffix))
}

// unaryString wires a unary string function into the universal
// propagation rules: Null input yields Null output, non-string input is
// Error (§4.2).
func unaryString(op func(s string) (value.Value, error)) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 1 {
			return ErrorResult(typeError("string function requires exactly 1 argument, got %d", len(args)))
		}
		r := e.Evaluate(ctx, doc, args[0])
		if r.IsError() {
			return r
		}
		if r.IsUnset() {
			return ErrorResult(errUnsetArgument)
		}
		if r.IsNull() {
			return NullResult()
		}
		s, ok := r.Value().AsString()
		if !ok {
			return ErrorResult(typeError("argument must be a string"))
		}
		v, err := op(s)
		if err != nil {
			return ErrorResult(err)
		}
		return ValueResult(v)
	}
}

// byteLength is the one string function that also accepts Bytes, counting
// UTF-8 bytes for a String and raw octets for Bytes (§4.2).
func byteLength(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("byte_length requires exactly 1 argument, got %d", len(args)))
	}
	r := e.Evaluate(ctx, doc, args[0])
	if r.IsError() {
		return r
	}
	if r.IsUnset() {
		return ErrorResult(errUnsetArgument)
	}
	if r.IsNull() {
		return NullResult()
	}
	if s, ok := r.Value().AsString(); ok {
		if !utf8.ValidString(s) {
			return ErrorResult(typeError("byte_length: ill-formed UTF-8"))
		}
		return ValueResult(value.Int(int64(len(s))))
	}
	if b, ok := r.Value().AsBytes(); ok {
		return ValueResult(value.Int(int64(len(b))))
	}
	return ErrorResult(typeError("byte_length: argument must be a string or bytes"))
}

func reverseString(s string) (value.Value, error) {
	if !utf8.ValidString(s) {
		return value.Value{}, typeError("reverse: ill-formed UTF-8")
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return value.String(string(runes)), nil
}

// strConcat is variadic: a Null argument makes the whole result Null, a
// non-string/non-null argument is Error (§5.3 of SPEC_FULL.md).
func strConcat(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if allNull(results) {
		return NullResult()
	}
	var sb strings.Builder
	for _, r := range results {
		if r.IsNull() {
			return NullResult()
		}
		s, ok := r.Value().AsString()
		if !ok {
			return ErrorResult(typeError("str_concat: all arguments must be strings"))
		}
		if !utf8.ValidString(s) {
			return ErrorResult(typeError("str_concat: ill-formed UTF-8"))
		}
		sb.WriteString(s)
	}
	return ValueResult(value.String(sb.String()))
}

// likeFunc implements SQL-style LIKE: % matches any sequence, _ matches a
// single code point, the pattern must fully match the value, no escaping.
func likeFunc(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("like requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if allNull(results) {
		return NullResult()
	}
	if results[0].IsNull() || results[1].IsNull() {
		return ErrorResult(typeError("like: operands must both be present to compare"))
	}
	s, ok := results[0].Value().AsString()
	if !ok {
		return ErrorResult(typeError("like: value must be a string"))
	}
	pattern, ok := results[1].Value().AsString()
	if !ok {
		return ErrorResult(typeError("like: pattern must be a string"))
	}
	re, err := likeToRegexp(pattern)
	if err != nil {
		return ErrorResult(err)
	}
	return ValueResult(value.Bool(re.MatchString(s)))
}

// likeToRegexp translates a SQL LIKE pattern into an anchored RE2 pattern,
// escaping every metacharacter except % (-> .*) and _ (-> .).
func likeToRegexp(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, typeError("like: invalid pattern: %v", err)
	}
	return re, nil
}

// binaryStringPredicate builds str_contains/starts_with/ends_with: simple
// byte-wise, case-sensitive string predicates with the same null handling
// as like/regex_contains/regex_match — both-Null yields Null, one-Null is
// Error, non-string operands are Error.
func binaryStringPredicate(name string, op func(s, sub string) bool) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 2 {
			return ErrorResult(typeError("%s requires exactly 2 arguments, got %d", name, len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if allNull(results) {
			return NullResult()
		}
		if results[0].IsNull() || results[1].IsNull() {
			return ErrorResult(typeError("%s: operands must both be present to compare", name))
		}
		s, ok := results[0].Value().AsString()
		if !ok {
			return ErrorResult(typeError("%s: value must be a string", name))
		}
		sub, ok := results[1].Value().AsString()
		if !ok {
			return ErrorResult(typeError("%s: operand must be a string", name))
		}
		return ValueResult(value.Bool(op(s, sub)))
	}
}

// regexFunc builds regex_contains (fullMatch=false) and regex_match
// (fullMatch=true), both backed by Go's RE2 regexp engine (no
// backreferences, matching the spec's RE2-compatible requirement).
func regexFunc(fullMatch bool) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 2 {
			return ErrorResult(typeError("regex function requires exactly 2 arguments, got %d", len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if allNull(results) {
			return NullResult()
		}
		if results[0].IsNull() || results[1].IsNull() {
			return ErrorResult(typeError("regex: operands must both be present to compare"))
		}
		s, ok := results[0].Value().AsString()
		if !ok {
			return ErrorResult(typeError("regex: value must be a string"))
		}
		pattern, ok := results[1].Value().AsString()
		if !ok {
			return ErrorResult(typeError("regex: pattern must be a string"))
		}
		p := pattern
		if fullMatch {
			p = "^(?:" + pattern + ")$"
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return ErrorResult(typeError("regex: invalid pattern: %v", err))
		}
		return ValueResult(value.Bool(re.MatchString(s)))
	}
}
