package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	cn "github.com/muzammil922/dentalcare-reporter/pkg/constant"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:generate mockgen --destination=pool.mock.go --package=pdf . PDFGenerator

// Compile-time interface satisfaction check.
var _ PDFGenerator = (*WorkerPool)(nil)

// PDFGenerator defines the interface for submitting PDF print tasks.
type PDFGenerator interface {
	// Print renders an HTML string to PDF and blocks until completion.
	Print(html string) ([]byte, error)
}

type printResult struct {
	pdf []byte
	err error
}

// Task represents a task to print a PDF.
type Task struct {
	HTML   string
	Result chan printResult
}

// WorkerPool manages multiple Chrome workers to print PDFs.
type WorkerPool struct {
	tasks   chan Task
	wg      *sync.WaitGroup
	workers int
	timeout time.Duration
	logger  log.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(num int, timeout time.Duration, logger log.Logger) *WorkerPool {
	wp := &WorkerPool{
		tasks:   make(chan Task),
		wg:      &sync.WaitGroup{},
		workers: num,
		timeout: timeout,
		logger:  logger,
	}
	for i := 0; i < num; i++ {
		wp.wg.Add(1)

		go func(workerID int) {
			defer func() {
				if r := recover(); r != nil {
					wp.logger.Errorf("Panic recovered in PDF worker %d: %v\nStack: %s", workerID, r, string(debug.Stack()))
				}
			}()

			wp.startWorker(workerID)
		}(i)
	}

	return wp
}

// startWorker runs a Chrome worker to print PDFs.
// Creates a single browser process per worker and reuses it for all tasks.
func (wp *WorkerPool) startWorker(_ int) {
	defer wp.wg.Done()

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), wp.getChromeOptions()...)
	defer allocCancel()

	for task := range wp.tasks {
		wp.processTask(allocCtx, task)
	}
}

// getChromeOptions returns optimized Chrome flags for PDF generation in containers with memory limits.
func (wp *WorkerPool) getChromeOptions() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-features", "TranslateUI,site-per-process"),

		chromedp.Flag("max-old-space-size", cn.PDFChromeMaxOldSpaceSize),
		chromedp.Flag("js-flags", "--max-old-space-size="+cn.PDFChromeMaxOldSpaceSize),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-namespace-sandbox", true),
	}
}

// processTask handles a single PDF print task.
func (wp *WorkerPool) processTask(allocCtx context.Context, task Task) {
	htmlSizeKB := float64(len(task.HTML)) / cn.PDFBytesPerKB
	wp.logger.Infof("Starting PDF print (HTML size: %.2f KB, timeout: %v)", htmlSizeKB, wp.timeout)

	if len(task.HTML) > cn.PDFLargeHTMLThreshold {
		wp.logger.Warnf("Large HTML detected (%.2f KB). Consider increasing PDF_TIMEOUT_SECONDS if timeouts occur", htmlSizeKB)
	}

	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	defer ctxCancel()

	ctxTimeout, cancelTimeout := context.WithTimeout(ctx, wp.timeout)
	defer cancelTimeout()

	tmpFileName, err := wp.createTempHTMLFile(task.HTML)
	if err != nil {
		task.Result <- printResult{err: err}
		return
	}

	pdfBuf, err := wp.printFromFile(ctxTimeout, tmpFileName)

	pdfBuf, err = wp.validatePDF(pdfBuf, err)

	err = wp.cleanupTempFile(tmpFileName, err)

	task.Result <- printResult{pdf: pdfBuf, err: err}
}

// createTempHTMLFile creates a temporary HTML file with the provided content.
func (wp *WorkerPool) createTempHTMLFile(html string) (string, error) {
	tmpFile, err := os.CreateTemp("", "pdf-*.html")
	if err != nil {
		wp.logger.Errorf("Failed to create temp HTML file: %v", err)
		return "", fmt.Errorf("failed to create temp HTML file: %w", err)
	}

	tmpFileName := tmpFile.Name()

	if err := tmpFile.Close(); err != nil {
		wp.logger.Warnf("Failed to close temp file %s: %v", tmpFileName, err)
	}

	if err := os.WriteFile(tmpFileName, []byte(html), cn.PDFFilePermissions); err != nil {
		wp.logger.Errorf("Failed to write HTML to temp file: %v", err)

		_ = os.Remove(tmpFileName)

		return "", fmt.Errorf("failed to write HTML to temp file: %w", err)
	}

	return tmpFileName, nil
}

// printFromFile prints a PDF from an HTML file using Chrome.
func (wp *WorkerPool) printFromFile(ctx context.Context, htmlFilePath string) ([]byte, error) {
	fileURL := "file://" + filepath.ToSlash(htmlFilePath)

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.Enable().Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(cn.PDFRenderSettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error

			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(cn.PDFPaperWidthInches).
				WithPaperHeight(cn.PDFPaperHeightInches).
				WithMarginTop(cn.PDFMarginInches).
				WithMarginBottom(cn.PDFMarginInches).
				WithMarginLeft(cn.PDFMarginInches).
				WithMarginRight(cn.PDFMarginInches).
				WithDisplayHeaderFooter(false).
				Do(ctx)

			return err
		}),
	)
	if err != nil {
		wp.logPrintError(ctx, err)
		return nil, err
	}

	return pdfBuf, nil
}

// validatePDF rejects suspiciously small output, which indicates an empty page.
func (wp *WorkerPool) validatePDF(pdfBuf []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}

	if len(pdfBuf) < cn.PDFMinValidSizeBytes {
		wp.logger.Errorf("Final PDF too small: %d bytes", len(pdfBuf))
		return nil, fmt.Errorf("generated PDF is too small (%d bytes), likely empty", len(pdfBuf))
	}

	wp.logger.Infof("PDF printed successfully: %d bytes", len(pdfBuf))

	return pdfBuf, nil
}

// cleanupTempFile removes the temporary HTML file and wraps cleanup errors with the original error.
func (wp *WorkerPool) cleanupTempFile(tmpFileName string, originalErr error) error {
	if err := os.Remove(tmpFileName); err != nil {
		wp.logger.Errorf("Failed to remove temp file %s: %v", tmpFileName, err)

		if originalErr == nil {
			return fmt.Errorf("printed PDF successfully but failed to remove temp file %s: %w", tmpFileName, err)
		}

		return fmt.Errorf("%w; additionally failed to remove temp file %s: %v", originalErr, tmpFileName, err)
	}

	return originalErr
}

// logPrintError logs PDF print errors with appropriate context.
func (wp *WorkerPool) logPrintError(ctx context.Context, err error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		wp.logger.Errorf("PDF print timeout (configured timeout: %v): %v", wp.timeout, err)
	} else if errors.Is(ctx.Err(), context.Canceled) {
		wp.logger.Errorf("PDF print context canceled: %v", err)
	} else {
		wp.logger.Errorf("PDF print failed: %v", err)
	}
}

// Print sends a task to the pool and blocks until it is completed.
func (wp *WorkerPool) Print(html string) ([]byte, error) {
	res := make(chan printResult, 1)
	wp.tasks <- Task{HTML: html, Result: res}

	r := <-res

	return r.pdf, r.err
}

// Close closes the pool and waits for all workers to finish.
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}

// IsHealthy returns true if the pool is healthy.
func (wp *WorkerPool) IsHealthy() bool {
	return wp.workers > 0 && wp.timeout > 0
}
