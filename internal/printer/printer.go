package printer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prince-pos/internal/domain"
)

// Printer accepts a rendered HTML document. The print protocol itself is the
// host's problem; implementations only hand the markup off.
type Printer interface {
	Print(doc string) (domain.PrintResult, error)
}

// FileSpoolPrinter drops each document into a spool directory, where the
// host shell picks it up and opens the print dialog.
type FileSpoolPrinter struct {
	Dir  string
	Name string
}

func NewFileSpoolPrinter(dir, name string) *FileSpoolPrinter {
	if name == "" {
		name = "spool"
	}
	return &FileSpoolPrinter{Dir: dir, Name: name}
}

func (p *FileSpoolPrinter) Print(doc string) (domain.PrintResult, error) {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return domain.PrintResult{}, fmt.Errorf("failed to create spool dir: %w", err)
	}

	path := filepath.Join(p.Dir, fmt.Sprintf("job-%d.html", time.Now().UnixNano()))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return domain.PrintResult{}, fmt.Errorf("failed to spool print job: %w", err)
	}

	return domain.PrintResult{Printer: p.Name, Status: "spooled", Detail: path}, nil
}

var _ Printer = (*FileSpoolPrinter)(nil)
