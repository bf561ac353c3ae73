package fileio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteReport writes one line per entry. Data goes to a temp file next to path and is
// renamed into place only after a successful flush, so readers never see a partial report.
func WriteReport(path string, lines []string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		if _, err = w.WriteString(l); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
