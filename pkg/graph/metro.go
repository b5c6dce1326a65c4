package graph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/germwalk/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

// MetroLayout selects how station rows become nodes.
type MetroLayout int

const (
	// MetroStations uses the station name as node ID, so a station served by
	// several lines becomes a transfer node.
	MetroStations MetroLayout = iota
	// MetroRedesign numbers stations per line ("Green Line_0", ...) and
	// ignores station names.
	MetroRedesign
)

// Bounding box of the Montreal island; rows outside it are dropped.
const (
	minLatitude  = 45.0
	maxLatitude  = 46.0
	minLongitude = -74.0
	maxLongitude = -73.0
)

// DefaultLineColor is used for lines missing from LineColors.
const DefaultLineColor = "gray"

// LineColors maps metro line names to their rendering colour.
var LineColors = map[string]string{
	"Green Line":  "green",
	"Orange Line": "orange",
	"Blue Line":   "blue",
	"Yellow Line": "yellow",
}

type station struct {
	line string
	name string
	pos  domain.Position
}

// ReadMetroCSV builds an undirected graph from a ';'-separated, ISO-8859-1
// encoded station list with the header columns line, station, latitude and
// longitude. Decimal commas are accepted and longitudes are forced west.
// Consecutive stations of the same line are linked by an edge coloured after
// the line. Malformed rows are skipped.
func ReadMetroCSV(r io.Reader, name string, layout MetroLayout) (*Graph, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"line", "latitude", "longitude"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}
	if _, ok := cols["station"]; !ok && layout == MetroStations {
		return nil, errors.New(`csv header is missing column "station"`)
	}

	title := cases.Title(language.Und)
	var rows []station
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		s, ok := parseStation(rec, cols, title)
		if !ok {
			continue
		}
		rows = append(rows, s)
	}

	if layout == MetroRedesign {
		return buildRedesign(rows, name), nil
	}
	return buildStations(rows, name), nil
}

func parseStation(rec []string, cols map[string]int, title cases.Caser) (station, bool) {
	field := func(key string) (string, bool) {
		i, ok := cols[key]
		if !ok || i >= len(rec) {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}

	line, ok := field("line")
	if !ok {
		return station{}, false
	}
	latRaw, ok := field("latitude")
	if !ok {
		return station{}, false
	}
	lonRaw, ok := field("longitude")
	if !ok {
		return station{}, false
	}

	lat, err := parseDecimal(latRaw)
	if err != nil {
		return station{}, false
	}
	lon, err := parseDecimal(lonRaw)
	if err != nil {
		return station{}, false
	}
	lon = -math.Abs(lon)

	if lat < minLatitude || lat > maxLatitude || lon < minLongitude || lon > maxLongitude {
		return station{}, false
	}

	name, _ := field("station")
	return station{
		line: title.String(line),
		name: name,
		pos:  domain.Position{X: lon, Y: lat},
	}, true
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func lineColor(line string) string {
	if c, ok := LineColors[line]; ok {
		return c
	}
	return DefaultLineColor
}

func buildStations(rows []station, name string) *Graph {
	b := NewBuilder(name, false)

	var lines []string
	byLine := make(map[string][]domain.NodeID)
	for _, s := range rows {
		if s.name == "" {
			continue
		}
		id := domain.NodeID(s.name)
		// The last row wins for the position of a repeated station.
		b.AddNodeAt(id, s.pos)
		if _, seen := byLine[s.line]; !seen {
			lines = append(lines, s.line)
		}
		byLine[s.line] = append(byLine[s.line], id)
	}

	for _, line := range lines {
		stations := byLine[line]
		for i := 0; i+1 < len(stations); i++ {
			b.AddEdge(stations[i], stations[i+1], lineColor(line))
		}
	}
	return b.Build()
}

func buildRedesign(rows []station, name string) *Graph {
	b := NewBuilder(name, false)

	var lines []string
	byLine := make(map[string][]domain.Position)
	for _, s := range rows {
		if _, seen := byLine[s.line]; !seen {
			lines = append(lines, s.line)
		}
		byLine[s.line] = append(byLine[s.line], s.pos)
	}

	for _, line := range lines {
		var prev domain.NodeID
		for i, pos := range byLine[line] {
			id := domain.NodeID(fmt.Sprintf("%s_%d", line, i))
			b.AddNodeAt(id, pos)
			if i > 0 {
				b.AddEdge(prev, id, lineColor(line))
			}
			prev = id
		}
	}
	return b.Build()
}
