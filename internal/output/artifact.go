package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Stager places the scanner report where a downstream upload step picks it
// up as a build artifact.
type Stager struct {
	// Dir is the artifact staging directory, created on demand.
	Dir string
}

// Stage copies the report into the staging directory. When the report does
// not exist (a clean run may never write one) staging is a logged no-op.
func (s *Stager) Stage(reportPath string) error {
	if _, err := os.Stat(reportPath); err != nil {
		if os.IsNotExist(err) {
			slog.Info("no report file to stage", "path", reportPath)
			return nil
		}
		return fmt.Errorf("checking report %s: %w", reportPath, err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact dir %s: %w", s.Dir, err)
	}

	dst := filepath.Join(s.Dir, filepath.Base(reportPath))
	if err := copyFile(reportPath, dst); err != nil {
		return fmt.Errorf("staging report artifact: %w", err)
	}

	slog.Info("report staged for artifact upload", "path", dst)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
