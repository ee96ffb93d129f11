package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// US letter at 96 dpi
const (
	pageWidth  = 816
	pageHeight = 1056

	pageMargin    = 48
	headerHeight  = 80
	footerHeight  = 44
	labelHeight   = 18
	lineHeight    = 18
	bubblePadding = 12
	bubbleGap     = 14
	bubbleRadius  = 10
	minBubbleW    = 64

	contentTop    = headerHeight + 24
	contentBottom = pageHeight - footerHeight - 12
	maxBubbleW    = (pageWidth - 2*pageMargin) * 7 / 10
	maxTextW      = maxBubbleW - 2*bubblePadding

	bodyFontSize = 13 // px
)

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
	goRegularErr  error
)

// newBodyFace returns a Go Regular face. The parsed font is shared, faces are not.
func newBodyFace() (font.Face, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	if goRegularErr != nil {
		return nil, errors.Wrap(goRegularErr, "parsing Go Regular")
	}
	face, err := opentype.NewFace(goRegular, &opentype.FaceOptions{Size: bodyFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(err, "creating Go Regular face")
	}
	return face, nil
}

var (
	brandColor     = color.RGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}
	neutralColor   = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	inkColor       = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	mutedColor     = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	ruleColor      = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	headerSubColor = color.RGBA{R: 0xc7, G: 0xd2, B: 0xfe, A: 0xff}
)

type (
	// bubble is one placed chunk of a message. Messages taller than a page are split across
	// several bubbles.
	bubble struct {
		label string
		user  bool
		lines []string
		rect  image.Rectangle
	}

	page struct {
		bubbles []bubble
	}
)

var printTmpl = template.Must(template.New("print").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: letter; margin: 0; }
body { margin: 0; background: #fff; }
img { display: block; width: 8.5in; height: 11in; page-break-after: always; }
img:last-child { page-break-after: auto; }
</style>
</head>
<body>
{{range $i, $src := .Pages}}<img src="{{$src}}" alt="Page {{inc $i}}">
{{end}}</body>
</html>
`))

// PDF renders the transcript the way the web client "prints" it: every page is rasterised to a
// PNG and the pages are wrapped in a print-ready HTML document. The file keeps the ".pdf"
// extension but its content type is HTML.
func (r *Renderer) PDF(messages []Message, title string, exportedAt time.Time) (File, error) {
	title = titleOrDefault(title)
	face, err := r.NewFace()
	if err != nil {
		return File{}, err
	}
	defer func() { _ = face.Close() }()
	pages := layout(face, messages, r.stamp)

	canvas := image.NewRGBA(image.Rect(0, 0, pageWidth, pageHeight))
	srcs := make([]template.URL, 0, len(pages))
	var buf bytes.Buffer
	for i, p := range pages {
		r.drawPage(canvas, face, p, title, exportedAt, i+1, len(pages))

		buf.Reset()
		if err := png.Encode(&buf, canvas); err != nil {
			return File{}, errors.Wrapf(err, "encoding page %d", i+1)
		}
		srcs = append(srcs, template.URL("data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes())))
	}

	var doc bytes.Buffer
	data := struct {
		Title string
		Pages []template.URL
	}{title, srcs}
	if err := printTmpl.Execute(&doc, data); err != nil {
		return File{}, errors.Wrap(err, "executing print template")
	}

	return File{
		Name:        Filename(title, FormatPDF),
		ContentType: ContentTypePrintHTML,
		Data:        doc.Bytes(),
	}, nil
}

// layout places message bubbles on pages. There is always at least one page.
func layout(face font.Face, messages []Message, stamp func(time.Time) string) []page {
	pages := []page{{}}
	y := contentTop

	for _, msg := range messages {
		lines := wrapText(face, msg.Content, maxTextW)
		label := roleLabel(msg.Role)
		if t, ok := msg.Time(); ok {
			label += "  " + stamp(t)
		}

		for len(lines) > 0 {
			avail := (contentBottom - y - labelHeight - 2*bubblePadding) / lineHeight
			if avail < len(lines) && y > contentTop {
				pages = append(pages, page{})
				y = contentTop
				continue
			}
			n := len(lines)
			if avail < n {
				n = avail
			}
			if n < 1 {
				n = 1
			}

			chunk := lines[:n]
			lines = lines[n:]

			w := minBubbleW
			for _, l := range chunk {
				if lw := font.MeasureString(face, l).Ceil() + 2*bubblePadding; lw > w {
					w = lw
				}
			}
			if w > maxBubbleW {
				w = maxBubbleW
			}
			h := n*lineHeight + 2*bubblePadding
			x := pageMargin
			if msg.IsUser() {
				x = pageWidth - pageMargin - w
			}
			top := y + labelHeight

			cur := &pages[len(pages)-1]
			cur.bubbles = append(cur.bubbles, bubble{
				label: label,
				user:  msg.IsUser(),
				lines: chunk,
				rect:  image.Rect(x, top, x+w, top+h),
			})
			label = roleLabel(msg.Role) + " (continued)"
			y = top + h + bubbleGap
		}
	}
	return pages
}

func (r *Renderer) drawPage(canvas *image.RGBA, face font.Face, p page, title string, exportedAt time.Time, num, total int) {
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	// header
	fillRect(canvas, image.Rect(0, 0, pageWidth, headerHeight), brandColor)
	text(canvas, face, title, pageMargin, 36, color.White)
	text(canvas, face, "Exported: "+r.stamp(exportedAt), pageMargin, 58, headerSubColor)

	// footer
	fillRect(canvas, image.Rect(pageMargin, pageHeight-footerHeight, pageWidth-pageMargin, pageHeight-footerHeight+1), ruleColor)
	text(canvas, face, r.Brand, pageMargin, pageHeight-footerHeight/2+4, mutedColor)
	pageNum := fmt.Sprintf("Page %d of %d", num, total)
	text(canvas, face, pageNum, pageWidth-pageMargin-font.MeasureString(face, pageNum).Ceil(), pageHeight-footerHeight/2+4, mutedColor)

	if len(p.bubbles) == 0 && num == 1 {
		text(canvas, face, "No messages", pageMargin, contentTop+lineHeight, mutedColor)
	}

	ascent := face.Metrics().Ascent.Ceil()
	for _, b := range p.bubbles {
		bg, ink := neutralColor, color.Color(inkColor)
		labelX := b.rect.Min.X
		if b.user {
			bg, ink = brandColor, color.White
			labelX = b.rect.Max.X - font.MeasureString(face, b.label).Ceil()
		}
		text(canvas, face, b.label, labelX, b.rect.Min.Y-labelHeight+ascent, mutedColor)
		fillRoundedRect(canvas, b.rect, bubbleRadius, bg)
		for i, l := range b.lines {
			text(canvas, face, l, b.rect.Min.X+bubblePadding, b.rect.Min.Y+bubblePadding+i*lineHeight+ascent, ink)
		}
	}
}

// text draws s with its baseline at y.
func text(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func fillRoundedRect(dst *image.RGBA, rect image.Rectangle, radius int, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if outsideCorner(rect, radius, x, y) {
				continue
			}
			dst.SetRGBA(x, y, rgba)
		}
	}
}

func outsideCorner(rect image.Rectangle, radius, x, y int) bool {
	cx, cy := x, y
	switch {
	case x < rect.Min.X+radius:
		cx = rect.Min.X + radius
	case x >= rect.Max.X-radius:
		cx = rect.Max.X - radius - 1
	}
	switch {
	case y < rect.Min.Y+radius:
		cy = rect.Min.Y + radius
	case y >= rect.Max.Y-radius:
		cy = rect.Max.Y - radius - 1
	}
	if cx == x || cy == y {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy > radius*radius
}

// wrapText breaks s into lines no wider than maxWidth pixels. Explicit newlines are kept and
// words too long for a line are split. It returns at least one line.
// Every rune is measured a bounded number of times, so the cost is linear in len(s).
func wrapText(face font.Face, s string, maxWidth int) []string {
	s = strings.ReplaceAll(s, "\t", "    ")

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var (
			line     string
			lineW    fixed.Int26_6
			lineLast = rune(-1)
		)
		for _, word := range strings.Fields(para) {
			if line != "" {
				sepW, _ := measure(face, lineLast, " ")
				wordW, last := measure(face, ' ', word)
				if w := lineW + sepW + wordW; w.Ceil() <= maxWidth {
					line, lineW, lineLast = line+" "+word, w, last
					continue
				}
				lines = append(lines, line)
			}

			wordW, last := measure(face, -1, word)
			if wordW.Ceil() <= maxWidth {
				line, lineW, lineLast = word, wordW, last
				continue
			}
			chunks := splitWord(face, word, maxWidth)
			lines = append(lines, chunks[:len(chunks)-1]...)
			line = chunks[len(chunks)-1]
			lineW, lineLast = measure(face, -1, line)
		}
		lines = append(lines, line)
	}
	return lines
}

// measure returns the advance of s drawn right after prev (-1 for none), kerning included,
// and the last rune of s.
func measure(face font.Face, prev rune, s string) (fixed.Int26_6, rune) {
	var w fixed.Int26_6
	for _, r := range s {
		if prev >= 0 {
			w += face.Kern(prev, r)
		}
		w += glyphAdvance(face, r)
		prev = r
	}
	return w, prev
}

// splitWord cuts word into chunks no wider than maxWidth in a single pass.
// A chunk holds at least one rune, even when that rune alone is too wide.
func splitWord(face font.Face, word string, maxWidth int) []string {
	var (
		chunks []string
		start  int
		w      fixed.Int26_6
		prev   = rune(-1)
	)
	for i, r := range word {
		adv := glyphAdvance(face, r)
		next := w + adv
		if prev >= 0 {
			next += face.Kern(prev, r)
		}
		if i > start && next.Ceil() > maxWidth {
			chunks = append(chunks, word[start:i])
			start, next = i, adv
		}
		w, prev = next, r
	}
	return append(chunks, word[start:])
}

// glyphAdvance measures missing glyphs as U+FFFD so widths are never underestimated.
func glyphAdvance(face font.Face, r rune) fixed.Int26_6 {
	if a, ok := face.GlyphAdvance(r); ok {
		return a
	}
	a, _ := face.GlyphAdvance(unicode.ReplacementChar)
	return a
}
