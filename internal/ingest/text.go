package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// preambleLines is the number of leading lines in a text log before the
// data starts: the source file name line and the "<Raw Data>" marker.
const preambleLines = 2

// readTextRows reads a whitespace-delimited text log, skipping the
// fixed two-line preamble. Blank lines are ignored.
func readTextRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line <= preambleLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	return rows, nil
}
