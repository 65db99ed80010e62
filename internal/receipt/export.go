package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
)

// Printer converts an HTML document into a paginated file and returns a
// reference to it. The platform print service sits behind this interface.
type Printer interface {
	PrintToFile(ctx context.Context, html string) (string, error)
}

// Sharer offers a generated file through the platform share surface.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, fileRef string) error
}

// Exporter runs the receipt download pipeline: render HTML, print it to a
// file, offer the file for sharing. Every failure is non-fatal and
// reported through the notifier; no partial receipt is kept anywhere.
type Exporter struct {
	printer  Printer
	sharer   Sharer
	notifier notify.Notifier
}

func NewExporter(printer Printer, sharer Sharer, notifier notify.Notifier) *Exporter {
	return &Exporter{printer: printer, sharer: sharer, notifier: notifier}
}

func (e *Exporter) Export(ctx context.Context, r Receipt) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", r.OrderID))

	html, err := RenderHTML(r)
	if err != nil {
		log.Error("failed to render receipt", zap.Error(err))
		e.notifier.Notify("Failed to generate receipt", notify.SeverityError)
		return
	}

	fileRef, err := e.printer.PrintToFile(ctx, html)
	if err != nil {
		log.Error("failed to print receipt", zap.Error(err))
		e.notifier.Notify("Failed to generate receipt", notify.SeverityError)
		return
	}

	if !e.sharer.Available() {
		log.Warn("sharing unavailable", zap.String("file", fileRef))
		e.notifier.Notify("Sharing is not available on this device", notify.SeverityError)
		return
	}

	if err := e.sharer.Share(ctx, fileRef); err != nil {
		log.Error("failed to share receipt", zap.Error(err))
		e.notifier.Notify("Failed to generate receipt", notify.SeverityError)
		return
	}

	log.Info("receipt exported", zap.String("file", fileRef))
}

// FilePrinter is the desktop stand-in for the platform print service: it
// writes the HTML document into Dir under a unique name.
type FilePrinter struct {
	Dir string
}

func (p FilePrinter) PrintToFile(ctx context.Context, html string) (string, error) {
	dir := p.Dir
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, fmt.Sprintf("receipt-%s.html", uuid.New().String()))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt file: %w", err)
	}

	return path, nil
}

// LogSharer "shares" by logging where the document landed. Always available.
type LogSharer struct{}

func (LogSharer) Available() bool { return true }

func (LogSharer) Share(ctx context.Context, fileRef string) error {
	logger.FromCtx(ctx).Info("receipt ready to share", zap.String("file", fileRef))
	return nil
}
