package auditnotes_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/auditnotes"
)

// Example_basic scans a project, checks a note and scans again.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "auditnotes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	src := "// TODO: fix bounds check\nx = 1\n/* @audit reentrancy risk\n   still risky */\n"
	path := filepath.Join(tmpDir, "Vault.sol")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		log.Fatal(err)
	}

	s, err := auditnotes.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// 1. Scan and write audit-notes.md
	if _, err := s.ScanAndSave(ctx, nil); err != nil {
		log.Fatal(err)
	}

	// 2. Check the first note
	if err := s.Toggle(ctx, path, 1, "TODO: fix bounds check", true); err != nil {
		log.Fatal(err)
	}

	// 3. Scan again: the checked state is carried over
	report, err := s.ScanAndSave(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d of %d notes checked\n", report.Checked, report.Notes)
	// Output:
	// 1 of 2 notes checked
}
