package mugshot

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/id"
)

// Printout is the gallery section of a print document.
type Printout struct {
	MainPath   string         `xml:"mainmugshotpath,omitempty"`
	MainBase64 string         `xml:"mainmugshotbase64,omitempty"`
	HasOthers  string         `xml:"hasothermugshots,omitempty"`
	Others     []PrintedImage `xml:"othermugshots>mugshot,omitempty"`
}

// PrintedImage is one non-main image in a print document.
type PrintedImage struct {
	Base64   string `xml:"stringbase64"`
	TempPath string `xml:"temppath,omitempty"`
}

// Empty reports whether the printout carries no gallery data.
func (p Printout) Empty() bool {
	return p.HasOthers == ""
}

// Print renders the gallery for a print document. Every image is written to a
// temporary .img file under dir so print layouts can reference it by file://
// URL. Directory or file failures are returned as FILESYSTEM_PERMISSION
// errors; the printout is still complete and falls back to inline base64.
func (g *Gallery) Print(ctx context.Context, dir string) (Printout, error) {
	if len(g.images) == 0 {
		return Printout{}, nil
	}

	var failures []error
	writer := tempWriter{dir: dir, token: id.NewFileToken()}
	write := func(name string, img *Image) string {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			return ""
		}
		path, err := writer.write(name, img)
		if err != nil {
			failures = append(failures, err)
			return ""
		}
		return path
	}

	var out Printout
	mainImage := g.Main()
	if mainImage != nil {
		out.MainPath = write(writer.token+".img", mainImage)
		out.MainBase64 = mainImage.Base64()
	}
	out.HasOthers = formatBool(mainImage == nil || len(g.images) > 1)
	for i, img := range g.images {
		if i == g.mainIndex {
			continue
		}
		out.Others = append(out.Others, PrintedImage{
			Base64:   img.Base64(),
			TempPath: write(writer.token+strconv.Itoa(i)+".img", img),
		})
	}
	return out, stderrors.Join(failures...)
}

type tempWriter struct {
	dir    string
	token  string
	ready  bool
	failed error
}

func (w *tempWriter) write(name string, img *Image) (string, error) {
	if w.failed != nil {
		return "", nil
	}
	if !w.ready {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			w.failed = errors.WrapWithMetadata(errors.CodeFilesystemPermission,
				"create mugshot directory", map[string]string{"Path": w.dir}, err)
			return "", w.failed
		}
		w.ready = true
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, img.data, 0o644); err != nil {
		return "", errors.WrapWithMetadata(errors.CodeFilesystemPermission,
			"write mugshot file", map[string]string{"Path": path}, err)
	}
	return fileURL(path), nil
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

func formatBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
