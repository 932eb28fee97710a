package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"tools.zach/dev/letteravatar/internal/paths"
)

// ///////////////////////////////////////////////
// Batch File
// ///////////////////////////////////////////////

// parseBatch reads one job per line in the form
//
//	name[|len[|text|background]]
//
// Blank lines and lines starting with '#' are skipped. Fields are trimmed;
// an empty len keeps the configured length. Out is left empty.
func parseBatch(r io.Reader) ([]job, error) {
	var jobs []job
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		j := job{Name: fields[0]}

		switch len(fields) {
		case 1:
		case 2, 4:
			if fields[1] != "" {
				n, err := strconv.Atoi(fields[1])
				if err != nil || n < 0 {
					return nil, fmt.Errorf("line %d: invalid length %q", lineNo, fields[1])
				}
				j.Len = n
			}
			if len(fields) == 4 {
				j.Text, j.Background = fields[2], fields[3]
			}
		default:
			return nil, fmt.Errorf("line %d: want name[|len[|text|background]], got %d fields", lineNo, len(fields))
		}
		jobs = append(jobs, j)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return jobs, nil
}

// batchFileName returns the output name for the 1-based entry index i.
func batchFileName(i int) string {
	return fmt.Sprintf("%03d%s", i, paths.BatchOutExt)
}

// ///////////////////////////////////////////////
// Batch Run
// ///////////////////////////////////////////////

// runBatch renders every entry of the batch file into outDir and returns the
// number of avatars written. It stops at the first failure. After a full run,
// numbered outputs beyond the last entry are removed.
func (a *app) runBatch(ctx context.Context, batchPath, outDir string) (int, error) {
	f, err := os.Open(batchPath)
	if err != nil {
		return 0, fmt.Errorf("open batch: %w", err)
	}
	jobs, err := parseBatch(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", batchPath, err)
	}

	start := time.Now()
	var total uint64
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		j.Out = filepath.Join(outDir, batchFileName(i+1))
		if err := a.generate(ctx, j); err != nil {
			return i, fmt.Errorf("entry %d (%q): %w", i+1, j.Name, err)
		}
		if info, err := os.Stat(j.Out); err == nil {
			total += uint64(info.Size())
		}
	}

	removed := removeStale(outDir, len(jobs))
	slog.Info("batch complete",
		"path", batchPath,
		"count", len(jobs),
		"removed", removed,
		"out_dir", outDir,
		"size", humanize.Bytes(total),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return len(jobs), nil
}

// removeStale deletes numbered outputs after entry n left by an earlier,
// longer run of the batch. Numbering is contiguous, so it stops at the first
// missing file.
func removeStale(outDir string, n int) int {
	removed := 0
	for i := n + 1; ; i++ {
		path := filepath.Join(outDir, batchFileName(i))
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("remove stale avatar", "path", path, "error", err)
			}
			return removed
		}
		removed++
	}
}
