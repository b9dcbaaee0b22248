package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// writeConfig creates a numera.toml whose cache lives in a temp dir.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	body := "[cache]\nenabled = true\ndir = " + quoteTOML(filepath.Join(dir, "cache")) + "\n" + extra
	path := filepath.Join(dir, "numera.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func quoteTOML(s string) string {
	return `'` + s + `'`
}

func runWith(t *testing.T, cfgPath, stdin string, args ...string) cliResult {
	t.Helper()
	var out, errb bytes.Buffer
	full := append([]string{"--color=off", "--config=" + cfgPath}, args...)
	code := run(full, strings.NewReader(stdin), &out, &errb)
	return cliResult{stdout: out.String(), stderr: errb.String(), code: code}
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	return runWith(t, writeConfig(t, ""), "", args...)
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "--to", "16", "255"}, "FF\n"},
		{[]string{"convert", "--from", "2", "--", "-1010"}, "-10\n"},
		{[]string{"convert", "--to", "2", "3/4"}, "11/100\n"},
		{[]string{"convert", "--from", "36", "ZZ"}, "1295\n"},
		{[]string{"convert", "--to", "36", "123456789012345678901234567890"}, "BYW97UM9S91DLZ68TSI\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := runCLI(t, tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	res := runCLI(t, "convert", "--from", "2", "102")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "error: ")
	assert.Contains(t, res.stderr, "invalid digit")

	res = runCLI(t, "convert", "--to", "37", "5")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid radix")
}

func TestConvertAllGolden(t *testing.T) {
	res := runCLI(t, "convert", "--all", "255")
	require.Equal(t, 0, res.code, res.stderr)
	golden(t).Assert(t, "convert_all", []byte(res.stdout))
}

func TestCalc(t *testing.T) {
	res := runCLI(t, "calc", "2", "3", "+", "p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "5\n", res.stdout)

	res = runCLI(t, "calc", "7 p 1 0 / p")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "7\n", res.stdout)
	assert.Equal(t, "error: at 8 \"/\": division by zero\n", res.stderr)
}

func TestCalcStdinGolden(t *testing.T) {
	res := runWith(t, writeConfig(t, ""), "1/2 1/3 + p\n2 64 ^ p\nobase=2 10 p\n", "calc")
	require.Equal(t, 0, res.code, res.stderr)
	golden(t).Assert(t, "calc_stdin", []byte(res.stdout))
}

func TestCalcFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.rpn")
	require.NoError(t, os.WriteFile(path, []byte("6 7 *\n"), 0o644))
	res := runCLI(t, "calc", "-f", path, "p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "42\n", res.stdout)
}

func TestCalcUsesConfigRadix(t *testing.T) {
	cfg := writeConfig(t, "[radix]\ninput = 10\noutput = 16\n")
	res := runWith(t, cfg, "", "calc", "255 p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "FF\n", res.stdout)

	res = runWith(t, cfg, "", "calc", "--obase", "8", "255 p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "377\n", res.stdout)
}

func TestFrac(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"frac", "6/8"}, "3/4\n"},
		{[]string{"frac", "1/2", "+", "1/3"}, "5/6\n"},
		{[]string{"frac", "1/2", "-", "3/4"}, "-1/4\n"},
		{[]string{"frac", "2/3", "x", "3/4"}, "1/2\n"},
		{[]string{"frac", "--float", "1/4"}, "1/4\n≈ 0.25\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := runCLI(t, tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}

	res := runCLI(t, "frac", "1/2", "/", "0/5")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "division by zero")

	res = runCLI(t, "frac", "1/2", "+")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "expected <a/b>")
}

func TestPowUsesCache(t *testing.T) {
	cfg := writeConfig(t, "")
	res := runWith(t, cfg, "", "pow", "2", "100")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1267650600228229401496703205376\n", res.stdout)

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(cfg), "cache", "results"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	res = runWith(t, cfg, "", "--timings", "pow", "2", "100")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1267650600228229401496703205376\n", res.stdout)
	assert.NotContains(t, res.stderr, "pow ", "cached run should skip the computation")

	res = runWith(t, cfg, "", "pow", "4", "13", "--mod", "497")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "445\n", res.stdout)

	res = runWith(t, cfg, "", "pow", "2", "--", "-1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "negative exponent")
}

func TestBatch(t *testing.T) {
	cfg := writeConfig(t, "")
	path := filepath.Join(t.TempDir(), "jobs.txt")
	require.NoError(t, os.WriteFile(path, []byte("# demo\n2 3 + p\n1 +\n\n2 10 ^ p\n"), 0o644))

	res := runWith(t, cfg, "", "batch", "--ui=off", "--jobs=2", path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "5\n1024\n", res.stdout)
	assert.Contains(t, res.stderr, "error: line 3: at 2 \"+\": stack underflow")
	assert.Contains(t, res.stderr, "3 jobs: 2 ok, 1 failed, 0 cached")
	assert.Contains(t, res.stderr, "error: 1 of 3 jobs failed")

	res = runWith(t, cfg, "2 3 * p\n", "--quiet", "batch", "--ui=off", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "6\n", res.stdout)
	assert.Empty(t, res.stderr)

	res = runWith(t, cfg, "2 3 * p\n", "batch", "--ui=off", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "1 jobs: 1 ok, 0 failed, 1 cached")

	res = runWith(t, cfg, "", "batch", "--ui=maybe", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid --ui value")
}

func TestSort(t *testing.T) {
	res := runCLI(t, "sort", "-r", "10", "9", "100", "10000000")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "10000000\n100\n10\n9\n", res.stdout)

	res = runWith(t, writeConfig(t, ""), "5 -3\n0  2\n", "sort")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "-3\n0\n2\n5\n", res.stdout)
}

func TestSortUniqueFractionsGolden(t *testing.T) {
	res := runCLI(t, "sort", "--unique", "--", "3", "1/2", "-2", "7/4", "2/4")
	require.Equal(t, 0, res.code, res.stderr)
	golden(t).Assert(t, "sort_unique_fractions", []byte(res.stdout))
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	res := runCLI(t, "init", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "created "+filepath.Join(dir, "numera.toml")+"\n", res.stdout)

	res = runCLI(t, "init", dir)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already exists")

	res = runWith(t, filepath.Join(dir, "numera.toml"), "", "calc", "1 p")
	require.Equal(t, 0, res.code, res.stderr)
}

func TestVersionJSONGolden(t *testing.T) {
	res := runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)
	golden(t).Assert(t, "version_json", []byte(res.stdout))

	res = runCLI(t, "version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "numera 0.1.0-dev\n", res.stdout)

	res = runCLI(t, "version", "--format", "xml")
	assert.Equal(t, 1, res.code)
}

func TestTracing(t *testing.T) {
	res := runCLI(t, "--trace-level=debug", "calc", "1 p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "[command] → cmd:calc")
	assert.Contains(t, res.stderr, "← op:p {depth=1}")
	assert.Contains(t, res.stderr, "← cmd:calc (ok)")

	res = runCLI(t, "--trace-level=error", "calc", "1 +")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "trace: last events before failure:")
	assert.Contains(t, res.stderr, "← cmd:calc (failed)")

	res = runCLI(t, "--trace-level=loud", "calc", "1 p")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid trace level")
}

func TestGlobalFlags(t *testing.T) {
	res := runCLI(t, "--timings", "calc", "1 p")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "timings:")
	assert.Contains(t, res.stderr, "eval")

	res = runCLI(t, "--color=sometimes", "calc", "1 p")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid --color value")

	res = runWith(t, filepath.Join(t.TempDir(), "missing.toml"), "", "calc", "1 p")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to parse TOML")
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	res := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "pow", "--no-cache", "3", "2000")
	require.Equal(t, 0, res.code, res.stderr)
	for _, p := range []string{cpu, mem} {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestBatchSamplePrograms(t *testing.T) {
	res := runCLI(t, "--quiet", "batch", "--ui=off", "--no-cache", filepath.Join("..", "..", "testdata", "programs", "integers.rpn"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "5\n-3\n-1\n1267650600228229401496703205376\n445\n6\n", res.stdout)
}
