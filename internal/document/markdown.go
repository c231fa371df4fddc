package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/akeefe/tagdex/pkg/types"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6}) (.*)$`)
	imagePattern   = regexp.MustCompile(`^!\[([^\]]*)\]\((.+)\)$`)
	imageDims      = regexp.MustCompile(`^(\d+)x(\d+)$`)
)

// File is a Markdown-backed document. The file is parsed into elements at
// open time; mutations accumulate in memory and are written back on Flush.
// Each line of the file is one element: headings by leading # runs, list
// items by a leading dash, images as ![alt](ref) with a WxH alt text also
// read as dimensions, everything else a paragraph. The alt text is kept on
// the element verbatim so untouched lines round-trip byte-identically. A
// tag token like "#people" never starts a heading because headings require
// a space after the # run.
type File struct {
	mem      *Memory
	path     string
	diskTime time.Time
	dirty    bool
}

// OpenFile parses a Markdown file into a document. Anchor bindings are
// re-derived from level-3 headings so back-links survive across
// invocations; as during scanning, a later heading with the same text
// replaces the earlier binding.
func OpenFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	mem := NewMemory(abs)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(content) == 0 {
		lines = nil
	}
	for _, line := range lines {
		el := parseLine(line)
		mem.elements = append(mem.elements, el)
		if el.IsHeading(types.HeadingAnchor) {
			mem.RegisterAnchor(el.Text, len(mem.elements)-1)
		}
	}

	return &File{mem: mem, path: abs, diskTime: info.ModTime()}, nil
}

// parseLine converts one Markdown line into an element
func parseLine(line string) types.Element {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return types.Heading(len(m[1]), m[2])
	}
	if strings.HasPrefix(line, "- ") {
		return types.ListItem(line[2:])
	}
	if m := imagePattern.FindStringSubmatch(line); m != nil {
		width, height := 0, 0
		if d := imageDims.FindStringSubmatch(m[1]); d != nil {
			width, _ = strconv.Atoi(d[1])
			height, _ = strconv.Atoi(d[2])
		}
		el := types.Image([]byte(m[2]), width, height)
		el.Alt = m[1]
		return el
	}
	return types.Paragraph(line)
}

// renderLine converts one element back into its Markdown line
func renderLine(el types.Element) string {
	switch el.Kind {
	case types.KindListItem:
		return "- " + el.Text
	case types.KindImage:
		alt := el.Alt
		if alt == "" {
			alt = fmt.Sprintf("%dx%d", el.Width, el.Height)
		}
		return fmt.Sprintf("![%s](%s)", alt, el.ImageData)
	default:
		if el.HeadingLevel > 0 {
			return strings.Repeat("#", el.HeadingLevel) + " " + el.Text
		}
		return el.Text
	}
}

func (f *File) ID() string { return f.path }
func (f *File) Len() int   { return f.mem.Len() }

func (f *File) ElementAt(i int) (types.Element, error) { return f.mem.ElementAt(i) }

func (f *File) Append(el types.Element) error {
	f.dirty = true
	return f.mem.Append(el)
}

func (f *File) Remove(i int) error {
	f.dirty = true
	return f.mem.Remove(i)
}

func (f *File) RegisterAnchor(name string, pos int) { f.mem.RegisterAnchor(name, pos) }

func (f *File) ResolveAnchor(name string) (int, bool) { return f.mem.ResolveAnchor(name) }

// ModifiedAt returns the later of the on-disk timestamp and the last
// unflushed in-memory mutation
func (f *File) ModifiedAt() time.Time {
	if f.dirty && f.mem.ModifiedAt().After(f.diskTime) {
		return f.mem.ModifiedAt()
	}
	return f.diskTime
}

// Flush writes the document back to its file and refreshes the on-disk
// timestamp
func (f *File) Flush() error {
	var b strings.Builder
	for _, el := range f.mem.elements {
		b.WriteString(renderLine(el))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(f.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("failed to stat document: %w", err)
	}
	f.diskTime = info.ModTime()
	f.dirty = false
	return f.mem.Flush()
}
