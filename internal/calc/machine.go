// Package calc implements a dc-style reverse Polish calculator over
// bignum integers and fractions.
//
// A program is a whitespace-separated list of tokens. Numbers are pushed,
// operators pop their operands and push their results, and the print words
// append lines to the output.
//
//	2 100 ^ p        → 1267650600228229401496703205376
//	1/2 1/3 + p      → 5/6
//	obase=16 255 p   → FF
package calc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"numera/internal/bignum"
	"numera/internal/trace"
)

var (
	// ErrStackUnderflow is returned when an operator needs more operands than the stack holds.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownWord is returned for a token that is neither a number nor a known word.
	ErrUnknownWord = errors.New("unknown word")
	// ErrIntegerRequired is returned when a non-integral fraction reaches % ^ powmod gcd or frac.
	ErrIntegerRequired = errors.New("integer operand required")
)

// Error reports the token that failed and its byte offset in the normalised program.
type Error struct {
	Pos   int
	Token string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("at %d %q: %v", e.Pos, e.Token, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Machine evaluates programs against a persistent stack.
// A Machine is not safe for concurrent use.
type Machine struct {
	stack  Stack
	ibase  int
	obase  int
	output []string
}

// NewMachine returns a machine reading literals in inputRadix and printing in outputRadix.
func NewMachine(inputRadix, outputRadix int) (*Machine, error) {
	m := &Machine{}
	if err := m.SetInputRadix(inputRadix); err != nil {
		return nil, err
	}
	if err := m.SetOutputRadix(outputRadix); err != nil {
		return nil, err
	}
	return m, nil
}

// SetInputRadix changes the radix used for number literals.
func (m *Machine) SetInputRadix(radix int) error {
	if radix < bignum.MinRadix || radix > bignum.MaxRadix {
		return fmt.Errorf("ibase: %w %d", bignum.ErrInvalidRadix, radix)
	}
	m.ibase = radix
	return nil
}

// SetOutputRadix changes the radix used by the print words.
func (m *Machine) SetOutputRadix(radix int) error {
	if radix < bignum.MinRadix || radix > bignum.MaxRadix {
		return fmt.Errorf("obase: %w %d", bignum.ErrInvalidRadix, radix)
	}
	m.obase = radix
	return nil
}

// InputRadix returns the current literal radix.
func (m *Machine) InputRadix() int { return m.ibase }

// OutputRadix returns the current print radix.
func (m *Machine) OutputRadix() int { return m.obase }

// Stack exposes the operand stack.
func (m *Machine) Stack() *Stack { return &m.stack }

// Eval runs program and returns the lines it printed.
// On error the lines printed before the failing token are returned with it,
// and the stack is left as it was before that token.
func (m *Machine) Eval(ctx context.Context, program string) ([]string, error) {
	m.output = m.output[:0]
	program = norm.NFKC.String(program)
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	for _, tok := range tokenize(program) {
		if err := ctx.Err(); err != nil {
			return m.lines(), err
		}
		span := trace.Begin(tracer, trace.ScopeOp, "op:"+tok.text, parent)
		err := m.step(tok.text)
		if err != nil {
			span.WithExtra("error", err.Error())
		}
		span.WithExtra("depth", strconv.Itoa(m.stack.Len())).End("")
		if err != nil {
			return m.lines(), &Error{Pos: tok.pos, Token: tok.text, Err: err}
		}
	}
	return m.lines(), nil
}

func (m *Machine) lines() []string {
	out := make([]string, len(m.output))
	copy(out, m.output)
	return out
}

func (m *Machine) step(tok string) error {
	if name, arg, ok := strings.Cut(tok, "="); ok {
		return m.directive(name, arg)
	}
	if op, ok := words[tok]; ok {
		return m.apply(op)
	}
	v, err := m.literal(tok)
	if err != nil {
		return err
	}
	m.stack.Push(v)
	return nil
}

func (m *Machine) directive(name, arg string) error {
	radix, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%s: %w %q", name, bignum.ErrInvalidRadix, arg)
	}
	switch name {
	case "ibase":
		return m.SetInputRadix(radix)
	case "obase":
		return m.SetOutputRadix(radix)
	default:
		return ErrUnknownWord
	}
}

func (m *Machine) literal(tok string) (Value, error) {
	if !startsWithDigit(tok, m.ibase) {
		return nil, ErrUnknownWord
	}
	if strings.Contains(tok, "/") {
		f, err := bignum.ParseFraction(tok, m.ibase)
		if err != nil {
			return nil, err
		}
		return Frac(f), nil
	}
	n, err := bignum.ParseInt(tok, m.ibase)
	if err != nil {
		return nil, err
	}
	return Int(n), nil
}

// startsWithDigit reports whether tok is an optional sign followed by a
// digit of radix. Anything else is treated as a word.
func startsWithDigit(tok string, radix int) bool {
	body := tok
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if body == "" {
		return false
	}
	var d int
	switch c := body[0]; {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return false
	}
	return d < radix
}

func (m *Machine) apply(op operator) error {
	args, err := m.stack.top(op.arity)
	if err != nil {
		return err
	}
	results, err := op.fn(m, args)
	if err != nil {
		return err
	}
	m.stack.replace(op.arity, results...)
	return nil
}

func (m *Machine) print(v Value) error {
	text, err := v.Text(m.obase)
	if err != nil {
		return err
	}
	m.output = append(m.output, text)
	return nil
}

type token struct {
	pos  int
	text string
}

func tokenize(program string) []token {
	var toks []token
	start := -1
	for i, r := range program {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, token{pos: start, text: program[start:i]})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{pos: start, text: program[start:]})
	}
	return toks
}
