package doc2tex

import (
	"context"
	"fmt"
	"sync"
)

// Run converts every supported source under inputPath. A file converts to
// <name>.tex next to itself, or mirrored below outputDir when one is given.
// Per-file failures are recorded in the report; the returned error is
// non-nil only when inputPath cannot be read. Cancellation is checked
// between files.
func (c *Converter) Run(ctx context.Context, inputPath, outputDir string) (*Report, error) {
	found, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoInput, err)
	}

	for _, path := range found.skipped {
		c.logger.Warn("skipping unsupported file", "path", path)
	}

	report := &Report{
		Results: c.convertAll(ctx, found.files),
		Skipped: found.skipped,
	}
	for _, r := range report.Results {
		if r.Success {
			report.BytesWritten += int64(r.ByteCount)
		}
	}

	if name := c.cfg.integrationFile; name != "" {
		path, err := writeIntegrationFile(found.root, name, report.Results)
		if err != nil {
			report.IntegrationErr = err
			c.logger.Error("writing integration file failed", "path", path, "error", err)
		} else {
			report.IntegrationPath = path
		}
	}

	c.logger.Info("batch finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"skipped", len(report.Skipped),
		"bytes", report.BytesWritten)
	return report, nil
}

// convertAll converts files sequentially or with a bounded worker pool.
// Results keep the order of files either way.
func (c *Converter) convertAll(ctx context.Context, files []FileToConvert) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	convert := func(idx int) {
		if err := ctx.Err(); err != nil {
			results[idx] = ConversionResult{
				InputPath:  files[idx].InputPath,
				OutputPath: files[idx].OutputPath,
				Err:        err,
			}
			return
		}
		results[idx] = c.ConvertFile(ctx, files[idx].InputPath, files[idx].OutputPath)
	}

	concurrency := min(ResolvePoolSize(c.cfg.workers), len(files))
	if concurrency <= 1 {
		for i := range files {
			convert(i)
		}
		return results
	}

	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				convert(idx)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
