package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/angelofallars/hourbill/internal/config"
	"github.com/angelofallars/hourbill/internal/invoice"
)

// ErrSaveFailed marks any I/O failure while persisting a generated
// invoice. The underlying error is attached for diagnostics but never
// surfaced raw.
var ErrSaveFailed = errors.New("saving invoice PDF failed")

const artifactExt = ".pdf"

// Persist writes the artifact bytes under the client's save folder and
// returns the final path. The filename is the generation timestamp, so
// two invoices generated in the same second for one client overwrite
// each other.
func (p *pipeline) Persist(gen *invoice.GeneratedInvoice, client config.ClientProfile) (string, error) {
	if err := os.MkdirAll(client.SaveFolder, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	path := filepath.Join(client.SaveFolder, invoice.FileStamp(gen.GeneratedAt)+artifactExt)
	if err := os.WriteFile(path, gen.PDFData, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return path, nil
}
