package fuzztests

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 4 << 10 // 4 KiB per program

var builtinPrograms = []string{
	"",
	"2 3 + p",
	"1/2 1/3 + p",
	"obase=16 255 p",
	"ibase=2 -1010 p",
	"4 13 497 powmod p",
	"1 0 /",
	"dup swap drop clear f",
	"１２ ３ ＋ p",
}

// addProgramSeeds adds every program line found under testdata/programs.
func addProgramSeeds(f *testing.F) {
	for _, p := range builtinPrograms {
		f.Add(p)
	}
	root := filepath.Join("..", "..", "testdata", "programs")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// #nosec G304 -- paths come from the repository testdata walk
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error { //nolint:errcheck
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rpn" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 || line[0] == '#' {
				continue
			}
			f.Add(string(clampSeed(line)))
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
