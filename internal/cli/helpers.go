package cli

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/service"
)

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func printLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(fmt.Sprintf(format, args...)))
}

// loaded passes err through unless it only reports a corrupt record, which
// is shown as a warning since the defaults are still usable.
func loaded(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrCorruptRecord) {
		warnf(cmd, "%v; showing defaults", err)
		return nil
	}
	return err
}

// saved reports the outcome of a write. A full store is a warning rather
// than a failure: the edit is shown but not persisted.
func saved(cmd *cobra.Command, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrQuotaExceeded):
		warnf(cmd, "storage is full, the change was not saved. Remove brand assets to free space (planforge assets list).")
		return false, nil
	default:
		return false, err
	}
}

func warnNotices(cmd *cobra.Command, notices app.Notices) {
	for _, n := range notices {
		warnf(cmd, "%v; using defaults", n)
	}
}

// readImage loads an image file for the brand library, detecting its media
// type from the extension and falling back to content sniffing.
func readImage(path string) (name, mimeType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	mimeType = mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return filepath.Base(path), mimeType, data, nil
}

func parseSlideNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.ValidationError{Field: "slide", Message: fmt.Sprintf("expected a slide number, got %q", s)}
	}
	return n, nil
}

// addOutFlag registers the shared --out directory flag.
func addOutFlag(fs *pflag.FlagSet, out *string, def string) {
	fs.StringVarP(out, "out", "o", def, "Directory to write the file to")
}

func notFound(what, id string) error {
	return fmt.Errorf("no %s with id %q", what, id)
}
