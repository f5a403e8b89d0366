package mugshot

import (
	"context"
	stderrors "errors"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/otel"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// NoMain is the main index of a gallery without a main image.
const NoMain = -1

// Gallery is an ordered portrait collection. The zero value is not usable;
// call New.
type Gallery struct {
	images    []*Image
	mainIndex int
}

// New returns an empty gallery.
func New() *Gallery {
	return &Gallery{mainIndex: NoMain}
}

// Images returns the images in display order.
func (g *Gallery) Images() []*Image {
	return slices.Clone(g.images)
}

// Len returns the number of images.
func (g *Gallery) Len() int {
	return len(g.images)
}

// Add appends img without changing the main index.
func (g *Gallery) Add(img *Image) {
	if img == nil {
		return
	}
	g.images = append(g.images, img)
}

// Main returns the main image, or nil.
func (g *Gallery) Main() *Image {
	if g.mainIndex < 0 || g.mainIndex >= len(g.images) {
		return nil
	}
	return g.images[g.mainIndex]
}

// SetMain selects img as the main image, appending it when it is not yet in
// the gallery. A nil img clears the selection and keeps every image.
func (g *Gallery) SetMain(img *Image) {
	if img == nil {
		g.mainIndex = NoMain
		return
	}
	if i := slices.Index(g.images, img); i >= 0 {
		g.mainIndex = i
		return
	}
	g.images = append(g.images, img)
	g.mainIndex = len(g.images) - 1
}

// MainIndex returns the main image index or NoMain.
func (g *Gallery) MainIndex() int {
	return g.mainIndex
}

// SetMainIndex selects the main image by position. Out of range values
// clear the selection.
func (g *Gallery) SetMainIndex(index int) {
	if index < 0 || index >= len(g.images) {
		g.mainIndex = NoMain
		return
	}
	g.mainIndex = index
}

// Load appends the decoded payloads and then applies mainIndex. Blank
// payloads are skipped. Payloads that fail to decode are dropped and the
// main selection follows its image to the new position; it is cleared only
// when the main payload itself was dropped. The
// returned error joins one MUGSHOT_DECODE_FAILED error per dropped payload
// and the gallery keeps every image that did decode.
func (g *Gallery) Load(ctx context.Context, mainIndex int, payloads []string) error {
	ctx, span := otel.StartSpan(ctx, "mugshot.load", attribute.Int("payloads", len(payloads)))
	defer span.End()
	started := time.Now()
	defer func() { metrics.MugshotDecodeDuration.Observe(time.Since(started).Seconds()) }()

	kept := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		if strings.TrimSpace(payload) != "" {
			kept = append(kept, payload)
		}
	}

	decoded := make([]*Image, len(kept))
	failures := make([]error, len(kept))
	decodeAt := func(i int) {
		img, err := DecodeBase64(kept[i])
		if err != nil {
			failures[i] = errors.WrapWithMetadata(errors.CodeMugshotDecodeFailed,
				"decode mugshot", map[string]string{"Index": strconv.Itoa(i)}, err)
			return
		}
		decoded[i] = img
	}

	switch len(kept) {
	case 0:
	case 1:
		decodeAt(0)
	default:
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(runtime.GOMAXPROCS(0))
		for i := range kept {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					failures[i] = err
					return nil
				}
				decodeAt(i)
				return nil
			})
		}
		_ = group.Wait()
	}

	// mainIndex counts positions before undecodable payloads were dropped.
	base := len(g.images)
	selected := mainIndex
	if mainIndex >= base+len(kept) {
		selected = NoMain
	}
	for i, img := range decoded {
		if img == nil {
			metrics.MugshotsDecodedTotal.WithLabelValues("failed").Inc()
			switch {
			case base+i == mainIndex:
				selected = NoMain
			case base+i < mainIndex && selected != NoMain:
				selected--
			}
			continue
		}
		metrics.MugshotsDecodedTotal.WithLabelValues("ok").Inc()
		g.images = append(g.images, img)
	}
	g.SetMainIndex(selected)

	return stderrors.Join(failures...)
}

// Payloads returns every image as base64 in display order.
func (g *Gallery) Payloads() []string {
	out := make([]string, 0, len(g.images))
	for _, img := range g.images {
		out = append(out, img.Base64())
	}
	return out
}
