package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/database"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

// RawRecord is one row of the source batch, keyed by column name. Values
// are strings when the batch came from a spreadsheet or CSV and may be
// native lists when it came from JSON.
type RawRecord map[string]any

// Source column names for the list-valued fields.
const (
	colGenres    = "genres"
	colCountries = "countriesOfOrigin"
	colLanguages = "spokenLanguages"
	colCompanies = "productionCompanies"
	colLocations = "filmingLocations"
)

// CompanyLabel is a production company reference. Sources either provide a
// structured (id, name) pair or a bare label, in which case the label
// serves as both.
type CompanyLabel struct {
	ID   string
	Name string
}

// MovieLabels carries the per-dimension label lists extracted from one row.
type MovieLabels struct {
	Genres    []string
	Languages []string
	Countries []string
	Companies []CompanyLabel
	Locations []string
}

// NormalizedRecord pairs the canonical movie attributes with its labels.
type NormalizedRecord struct {
	Movie  database.Movie
	Labels MovieLabels
}

// BatchStats reports what normalization dropped or recovered.
type BatchStats struct {
	Records             int
	DuplicatesDropped   int
	MissingIDDropped    int
	MalformedListFields int
}

// Normalize parses one raw row into a movie record plus dimension labels.
// Malformed list fields recover to empty lists and are counted; scalar
// attributes that fail to parse become nulls. The bool result is false when
// the row has no usable movie id.
func Normalize(raw RawRecord) (NormalizedRecord, int, bool) {
	id := stringValue(raw["id"])
	if id == "" {
		return NormalizedRecord{}, 0, false
	}

	malformed := 0
	list := func(col string) []any {
		items, ok := labelValues(raw[col])
		if !ok {
			logger.Debug("malformed list field recovered as empty", "movie", id, "column", col)
			malformed++
		}
		return items
	}

	rec := NormalizedRecord{
		Movie: database.Movie{
			ID:                    id,
			URL:                   stringPtr(raw["url"]),
			PrimaryTitle:          stringValue(raw["primaryTitle"]),
			OriginalTitle:         stringPtr(raw["originalTitle"]),
			Type:                  stringPtr(raw["type"]),
			Description:           stringPtr(raw["description"]),
			PrimaryImage:          stringPtr(raw["primaryImage"]),
			Trailer:               stringPtr(raw["trailer"]),
			ContentRating:         stringPtr(raw["contentRating"]),
			IsAdult:               boolPtr(raw["isAdult"]),
			ReleaseDate:           datePtr(raw["releaseDate"]),
			StartYear:             intPtr(raw["startYear"]),
			EndYear:               intPtr(raw["endYear"]),
			RuntimeMinutes:        intPtr(raw["runtimeMinutes"]),
			Budget:                floatPtr(raw["budget"]),
			GrossWorldwide:        floatPtr(raw["grossWorldwide"]),
			AverageRating:         floatPtr(raw["averageRating"]),
			NumVotes:              intPtr(raw["numVotes"]),
			Metascore:             intPtr(raw["metascore"]),
			WeekendGrossAmount:    floatPtr(raw["weekendGrossAmount"]),
			WeekendGrossCurrency:  stringPtr(raw["weekendGrossCurrency"]),
			LifetimeGrossAmount:   floatPtr(raw["lifetimeGrossAmount"]),
			LifetimeGrossCurrency: stringPtr(raw["lifetimeGrossCurrency"]),
			WeeksRunning:          intPtr(raw["weeksRunning"]),
		},
		Labels: MovieLabels{
			Genres:    labelStrings(list(colGenres)),
			Countries: labelStrings(list(colCountries)),
			Languages: labelStrings(list(colLanguages)),
			Companies: companyLabels(list(colCompanies)),
			Locations: labelStrings(list(colLocations)),
		},
	}
	return rec, malformed, true
}

// NormalizeBatch normalizes every row, dropping rows without a movie id and
// deduplicating by movie id. The first occurrence of an id wins; later ones
// are dropped and counted.
func NormalizeBatch(rows []RawRecord) ([]NormalizedRecord, BatchStats) {
	stats := BatchStats{}
	seen := make(map[string]struct{}, len(rows))
	records := make([]NormalizedRecord, 0, len(rows))

	for _, raw := range rows {
		rec, malformed, ok := Normalize(raw)
		if !ok {
			stats.MissingIDDropped++
			continue
		}
		stats.MalformedListFields += malformed
		if _, dup := seen[rec.Movie.ID]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[rec.Movie.ID] = struct{}{}
		records = append(records, rec)
	}
	stats.Records = len(records)
	return records, stats
}

// labelValues accepts a list-valued cell in any of the shapes the source
// produces: a native list, a serialized list literal, or nothing. The bool
// result is false only for genuinely malformed values.
func labelValues(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case []any:
		return val, true
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return items, true
	case string:
		if isAbsent(val) {
			return nil, true
		}
		items, err := parseListLiteral(val)
		if err != nil {
			return nil, false
		}
		return items, true
	default:
		return nil, false
	}
}

func labelStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// companyLabels uniformly produces (id, name) pairs whether the source sent
// structured dict entries or bare labels.
func companyLabels(items []any) []CompanyLabel {
	out := make([]CompanyLabel, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]string:
			label := CompanyLabel{ID: v["id"], Name: v["name"]}
			if label.ID == "" {
				label.ID = label.Name
			}
			if label.Name == "" {
				label.Name = label.ID
			}
			if label.ID != "" {
				out = append(out, label)
			}
		case map[string]any:
			label := CompanyLabel{ID: stringValue(v["id"]), Name: stringValue(v["name"])}
			if label.ID == "" {
				label.ID = label.Name
			}
			if label.Name == "" {
				label.Name = label.ID
			}
			if label.ID != "" {
				out = append(out, label)
			}
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, CompanyLabel{ID: s, Name: s})
			}
		}
	}
	return out
}

// Scalar cell parsing. Spreadsheet exports mark missing values with empty
// cells or pandas-style nan/None tokens; all of those become nulls.

func isAbsent(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "nan", "NaN", "None", "null", "<NA>":
		return true
	}
	return false
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if isAbsent(val) {
			return ""
		}
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func stringPtr(v any) *string {
	if s := stringValue(v); s != "" {
		return &s
	}
	return nil
}

func floatPtr(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case int:
		f := float64(val)
		return &f
	case string:
		if isAbsent(val) {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func intPtr(v any) *int {
	f := floatPtr(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func boolPtr(v any) *bool {
	switch val := v.(type) {
	case bool:
		return &val
	case string:
		if isAbsent(val) {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1":
			b := true
			return &b
		case "false", "0":
			b := false
			return &b
		}
		return nil
	case float64:
		b := val != 0
		return &b
	default:
		return nil
	}
}

func datePtr(v any) *time.Time {
	s := stringValue(v)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
