package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gogpu/psdkit"
	"github.com/gogpu/psdkit/internal/imageio"
)

// checkSize rejects files above the configured limit before reading them.
func (g *globalOpts) checkSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if limit := g.cfg.Input.MaxFileSize; info.Size() > limit {
		return fmt.Errorf("%s is %d bytes, limit is %d", path, info.Size(), limit)
	}
	return nil
}

// readDocument decodes a layered document. Documents without a resolution
// get the configured default.
func (g *globalOpts) readDocument(path string) (*psdkit.LayerSet, error) {
	if err := g.checkSize(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := psdkit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.Resolution == nil {
		set.Resolution = g.cfg.DocumentResolution()
	}
	return set, nil
}

// readImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func (g *globalOpts) readImage(path string) (*psdkit.RasterBuffer, error) {
	if err := g.checkSize(path); err != nil {
		return nil, err
	}
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return psdkit.FromImage(img), nil
}

// newResultID returns the prefix shared by every file of one run.
func newResultID() string {
	return uuid.NewString()
}

// writeArtifacts encodes every artifact to {out}/{id}_{name}{ext} and
// returns the written paths.
func (g *globalOpts) writeArtifacts(id string, artifacts []psdkit.Artifact) ([]string, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		data, err := a.Encode()
		if err != nil {
			return paths, err
		}
		path := filepath.Join(g.outDir, fmt.Sprintf("%s_%s%s", id, a.Name, a.Ext()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// report prints written paths to the command output, one per line.
func (g *globalOpts) report(paths []string) {
	for _, p := range paths {
		fmt.Fprintln(g.out, p)
	}
}
