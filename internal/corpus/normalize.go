package corpus

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"trendboard/internal/config"
	"trendboard/internal/models"
)

// preambleLines is the number of lines Google Trends puts before the
// column header ("Category: ..." and a blank line).
const preambleLines = 2

// belowOne is how Trends writes a non-zero value that rounds to nothing.
const belowOne = "<1"

var (
	errNoColumns   = errors.New("no columns to parse from file")
	errBadDate     = errors.New("invalid date")
	errBadMentions = errors.New("mentions must be a non-negative integer")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"01-02-06",
	"1/2/06",
	"2006-01",
}

// Batch is the set of records one file contributes for one location.
type Batch struct {
	Source   string
	Location string
	Records  []models.Record
}

// Normalizer turns a single export file into typed records.
type Normalizer struct {
	catalog *config.Catalog
}

// NewNormalizer creates a normalizer that resolves categories and location
// aliases through catalog.
func NewNormalizer(catalog *config.Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

type point struct {
	date     time.Time
	mentions int64
}

// Normalize reads the file behind entry and returns one batch per resolved
// location. Alias tags produce one full copy of the rows per member city.
// A file without data rows returns no batches. Any malformed content returns
// a *ParseError.
func (n *Normalizer) Normalize(entry Entry) ([]Batch, error) {
	product, tag, err := ParseFilename(filepath.Base(entry.Path))
	if err != nil {
		return nil, &ParseError{Path: entry.Path, Err: err}
	}

	var points []point
	switch strings.ToLower(filepath.Ext(entry.Path)) {
	case ".xlsx":
		points, err = readXLSX(entry.Path)
	default:
		points, err = readCSV(entry.Path)
	}
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}

	category := n.catalog.Category(product)
	cities := n.catalog.Expand(tag)
	batches := make([]Batch, 0, len(cities))
	for _, city := range cities {
		records := make([]models.Record, len(points))
		for i, p := range points {
			records[i] = models.Record{
				Date:     p.date,
				Mentions: p.mentions,
				Product:  product,
				Category: category,
				Location: city,
			}
		}
		batches = append(batches, Batch{Source: entry.Path, Location: city, Records: records})
	}

	return batches, nil
}

// ParseFilename splits "<Product>_<LocationTag>.<ext>" into its tokens.
// Tokens after the second are ignored.
func ParseFilename(name string) (product, tag string, err error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = norm.NFC.String(stem)

	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return "", "", ErrBadFilename
	}
	product = strings.TrimSpace(parts[0])
	tag = strings.TrimSpace(parts[1])
	if product == "" || tag == "" {
		return "", "", ErrBadFilename
	}
	return product, tag, nil
}

func readCSV(path string) ([]point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < preambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, &ParseError{Path: path, Err: errNoColumns}
			}
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	p := &rowParser{path: path}
	for {
		cells, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line + preambleLines
			}
			return nil, &ParseError{Path: path, Line: line, Err: err}
		}
		line, _ := r.FieldPos(0)
		if err := p.add(cells, line+preambleLines); err != nil {
			return nil, err
		}
	}

	return p.finish()
}

// rowParser applies the shared row convention: an optional column header
// first, then exactly two cells per row. Only a first row whose cells are
// neither a date nor a count is taken as the header.
type rowParser struct {
	path   string
	seen   bool
	points []point
}

func (p *rowParser) add(cells []string, line int) error {
	if isBlank(cells) {
		return nil
	}
	if len(cells) != 2 {
		return &ParseError{Path: p.path, Line: line, Err: fmt.Errorf("%w, got %d", ErrColumnCount, len(cells))}
	}

	first := !p.seen
	p.seen = true

	date, dateErr := parseDate(cells[0])
	mentions, err := parseMentions(cells[1])
	if dateErr != nil {
		if first && err != nil {
			// Column header row: neither cell is data
			return nil
		}
		return &ParseError{Path: p.path, Line: line, Err: dateErr}
	}
	if err != nil {
		return &ParseError{Path: p.path, Line: line, Err: err}
	}

	p.points = append(p.points, point{date: date, mentions: mentions})
	return nil
}

func (p *rowParser) finish() ([]point, error) {
	if !p.seen {
		return nil, &ParseError{Path: p.path, Err: errNoColumns}
	}
	return p.points, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadDate, s)
}

func parseMentions(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == belowOne {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errBadMentions, s)
	}
	return n, nil
}
