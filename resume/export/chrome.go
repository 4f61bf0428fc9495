package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

// ChromePDF prints the rendered HTML preview through headless Chrome. It needs
// a Chrome binary on the host; PDF is the portable alternative.
type ChromePDF struct {
	Timeout time.Duration
}

// ContentType implements Exporter.
func (ChromePDF) ContentType() string { return "application/pdf" }

// Extension implements Exporter.
func (ChromePDF) Extension() string { return "pdf" }

// Export implements Exporter.
func (c ChromePDF) Export(ctx context.Context, doc document.Resume) ([]byte, error) {
	markup, err := preview.Render(doc)
	if err != nil {
		return nil, err
	}
	return c.Print(ctx, markup)
}

// Print renders arbitrary HTML to PDF.
func (c ChromePDF) Print(ctx context.Context, markup string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			out = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print: %w", err)
	}
	return out, nil
}
