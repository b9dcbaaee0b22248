package calc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numera/internal/bignum"
	"numera/internal/trace"
)

func eval(t *testing.T, program string) []string {
	t.Helper()
	m, err := NewMachine(10, 10)
	require.NoError(t, err)
	lines, err := m.Eval(context.Background(), program)
	require.NoError(t, err, "program %q", program)
	return lines
}

func TestEvalPrograms(t *testing.T) {
	tests := []struct {
		name    string
		program string
		want    []string
	}{
		{"add", "2 3 + p", []string{"5"}},
		{"words", "2 3 add 4 mul print", []string{"20"}},
		{"big power", "2 100 ^ p", []string{"1267650600228229401496703205376"}},
		{"truncating division", "-7 2 / p", []string{"-3"}},
		{"mod follows dividend", "-7 2 % p", []string{"-1"}},
		{"fraction literal", "1/2 1/3 + p", []string{"5/6"}},
		{"mixed division", "7 1/2 / p", []string{"14/1"}},
		{"frac reduces", "6 -4 frac p", []string{"-3/2"}},
		{"num and den", "-6/4 dup num p drop den p", []string{"-3", "2"}},
		{"inv of int", "4 inv p", []string{"1/4"}},
		{"powmod", "4 13 497 powmod p", []string{"445"}},
		{"gcd", "12 -18 gcd p", []string{"6"}},
		{"cmp", "1/3 1/2 cmp p 2 2 cmp p 4/2 1 cmp p", []string{"-1", "0", "1"}},
		{"neg abs", "5 neg p abs p -1/2 neg p", []string{"-5", "5", "1/2"}},
		{"swap", "1 2 swap - p", []string{"1"}},
		{"stack top first", "1 2 3 f", []string{"3", "2", "1"}},
		{"clear", "1 2 clear 9 stack", []string{"9"}},
		{"output radix", "obase=16 255 p -255/2 p", []string{"FF", "-FF/2"}},
		{"input radix", "ibase=2 1010 obase=10 p", []string{"10"}},
		{"hex literal", "ibase=16 FF 1 + p", []string{"256"}},
		{"integral fraction as int", "1/2 1/2 + 2 ^ p", []string{"1"}},
		{"full width digits", "１２ ３ ＋ p", []string{"15"}},
		{"empty", "  \n\t", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.program))
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		program string
		want    error
		pos     int
		token   string
	}{
		{"1 +", ErrStackUnderflow, 2, "+"},
		{"1 2 frob", ErrUnknownWord, 4, "frob"},
		{"1/2 3 %", ErrIntegerRequired, 6, "%"},
		{"2 1/3 ^", ErrIntegerRequired, 6, "^"},
		{"1 0 /", bignum.ErrDivByZero, 4, "/"},
		{"1 0 frac", bignum.ErrDivByZero, 4, "frac"},
		{"2 -1 ^", bignum.ErrNegativeExponent, 5, "^"},
		{"12x", bignum.ErrInvalidDigit, 0, "12x"},
		{"obase=37", bignum.ErrInvalidRadix, 0, "obase=37"},
		{"ibase=ten", bignum.ErrInvalidRadix, 0, "ibase=ten"},
		{"base=3", ErrUnknownWord, 0, "base=3"},
	}
	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			m, err := NewMachine(10, 10)
			require.NoError(t, err)
			_, err = m.Eval(context.Background(), tt.program)
			require.ErrorIs(t, err, tt.want)

			var calcErr *Error
			require.True(t, errors.As(err, &calcErr))
			assert.Equal(t, tt.pos, calcErr.Pos)
			assert.Equal(t, tt.token, calcErr.Token)
		})
	}
}

func TestFailedOperationKeepsStack(t *testing.T) {
	m, err := NewMachine(10, 10)
	require.NoError(t, err)

	lines, err := m.Eval(context.Background(), "7 p 0 / 1 p")
	require.ErrorIs(t, err, bignum.ErrDivByZero)
	assert.Equal(t, []string{"7"}, lines)
	require.Equal(t, 2, m.Stack().Len())

	lines, err = m.Eval(context.Background(), "drop p")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, lines)
}

func TestMachineRadixValidation(t *testing.T) {
	_, err := NewMachine(1, 10)
	require.ErrorIs(t, err, bignum.ErrInvalidRadix)
	_, err = NewMachine(10, 37)
	require.ErrorIs(t, err, bignum.ErrInvalidRadix)

	m, err := NewMachine(16, 2)
	require.NoError(t, err)
	assert.Equal(t, 16, m.InputRadix())
	assert.Equal(t, 2, m.OutputRadix())
}

func TestEvalHonoursCancellation(t *testing.T) {
	m, err := NewMachine(10, 10)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Eval(ctx, "1 p")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.Stack().Len())
}

func TestEvalTracesOperations(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	m, err := NewMachine(10, 10)
	require.NoError(t, err)
	_, err = m.Eval(ctx, "2 3 +")
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 6, strings.Count(out, "\n"), out)
	assert.Contains(t, out, "← op:+ {depth=1}")
}
