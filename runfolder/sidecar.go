package runfolder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hupe1980/interop/blobstore"
)

// Run configuration sidecars copied verbatim alongside the metric files.
const (
	RunInfoFile       = "RunInfo.xml"
	RunParametersFile = "RunParameters.xml"
)

var sidecarFiles = []string{RunInfoFile, RunParametersFile}

// CopySidecars copies the run configuration XML files verbatim. The core
// codec never touches them. Missing sidecars are not an error.
func CopySidecars(ctx context.Context, src blobstore.Store, dst blobstore.WritableStore) error {
	for _, name := range sidecarFiles {
		data, err := blobstore.ReadAll(ctx, src, name)
		if errors.Is(err, blobstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := dst.Put(ctx, name, data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// OutputName returns the conventional destination folder name for a
// bounded copy, e.g. "140131_1287_0851_A01n401drr_MaxCycle_26".
func OutputName(runFolder string, maxCycle uint16) string {
	base := filepath.Base(strings.TrimRight(runFolder, "/\\"))
	return fmt.Sprintf("%s_MaxCycle_%d", base, maxCycle)
}
