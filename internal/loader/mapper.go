package loader

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
)

// Canonical field names used by the column maps.
const (
	fieldName       = "name"
	fieldTeam       = "team"
	fieldPosition   = "position"
	fieldExternalID = "external_id"
	fieldPassAtt    = "pass_att"
	fieldPassCmp    = "pass_cmp"
	fieldPassYds    = "pass_yds"
	fieldPassTds    = "pass_tds"
	fieldPassInts   = "pass_ints"
	fieldRushAtt    = "rush_att"
	fieldRushYds    = "rush_yds"
	fieldRushTds    = "rush_tds"
	fieldReceptions = "receptions"
	fieldRecYds     = "rec_yds"
	fieldRecTds     = "rec_tds"
	fieldTargets    = "targets"
	fieldFumbles    = "fumbles"
)

// sourceMaps translate raw column names to canonical fields. Several raw
// spellings may feed the same field since source files vary across seasons.
type sourceMaps struct {
	playerMap     map[string]string
	projectionMap map[string]string
}

var nflverseMaps = sourceMaps{
	playerMap: map[string]string{
		"player_name":         fieldName,
		"player_display_name": fieldName,
		"recent_team":         fieldTeam,
		"position":            fieldPosition,
		"player_id":           fieldExternalID,
	},
	projectionMap: map[string]string{
		"passing_yards":   fieldPassYds,
		"completions":     fieldPassCmp,
		"attempts":        fieldPassAtt,
		"passing_tds":     fieldPassTds,
		"interceptions":   fieldPassInts,
		"rushing_yards":   fieldRushYds,
		"carries":         fieldRushAtt,
		"rushing_tds":     fieldRushTds,
		"receptions":      fieldReceptions,
		"receiving_yards": fieldRecYds,
		"receiving_tds":   fieldRecTds,
		"targets":         fieldTargets,
		"fumbles_lost":    fieldFumbles,
	},
}

var ffdpMaps = sourceMaps{
	playerMap: map[string]string{
		"Player": fieldName,
		"player": fieldName,
		"Tm":     fieldTeam,
		"team":   fieldTeam,
		"Pos":    fieldPosition,
		"pos":    fieldPosition,
	},
	projectionMap: map[string]string{
		"PassYds":      fieldPassYds,
		"pass_yds":     fieldPassYds,
		"PassAtt":      fieldPassAtt,
		"pass_att":     fieldPassAtt,
		"PassCmp":      fieldPassCmp,
		"pass_cmp":     fieldPassCmp,
		"PassTD":       fieldPassTds,
		"pass_td":      fieldPassTds,
		"Int":          fieldPassInts,
		"pass_int":     fieldPassInts,
		"RushYds":      fieldRushYds,
		"rush_yds":     fieldRushYds,
		"RushAtt":      fieldRushAtt,
		"rush_att":     fieldRushAtt,
		"RushTD":       fieldRushTds,
		"rush_td":      fieldRushTds,
		"Rec":          fieldReceptions,
		"rec":          fieldReceptions,
		"RecYds":       fieldRecYds,
		"rec_yds":      fieldRecYds,
		"RecTD":        fieldRecTds,
		"rec_td":       fieldRecTds,
		"Tgt":          fieldTargets,
		"targets":      fieldTargets,
		"FL":           fieldFumbles,
		"fumbles":      fieldFumbles,
		"fumbles_lost": fieldFumbles,
	},
}

// Mapper translates source tables into domain records using per-source
// column maps.
type Mapper struct {
	sources map[string]sourceMaps
}

func NewMapper() *Mapper {
	return &Mapper{
		sources: map[string]sourceMaps{
			SourceNFLVerse: nflverseMaps,
			SourceFFDP:     ffdpMaps,
		},
	}
}

// MapPlayers extracts unique player records from a source table. Duplicate
// (name, position) rows keep the first occurrence.
func (m *Mapper) MapPlayers(table Table, source string) ([]player.Record, error) {
	if table.Empty() {
		return nil, nil
	}
	maps, err := m.sourceMaps(source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []player.Record
	for _, row := range table.Rows {
		canonical := remapRow(row, maps.playerMap)

		record := player.Record{
			Name:       strings.TrimSpace(canonical[fieldName]),
			Position:   player.Position(strings.TrimSpace(canonical[fieldPosition])),
			Team:       strings.TrimSpace(canonical[fieldTeam]),
			ExternalID: parseExternalID(canonical[fieldExternalID]),
		}
		if record.Name == "" || record.Position == "" {
			continue
		}

		key := player.CompositeKey(record.Name, record.Position)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, record)
	}
	return out, nil
}

// MapProjections extracts projection records from a source table, linking
// each row to a player through lookup. Lookup keys are tried as bare name
// first, then name plus position. Rows with no match are skipped and
// counted.
func (m *Mapper) MapProjections(table Table, source string, season, week int, lookup map[string]string) ([]projection.Record, int, error) {
	if table.Empty() {
		return nil, 0, nil
	}
	maps, err := m.sourceMaps(source)
	if err != nil {
		return nil, 0, err
	}

	var out []projection.Record
	skipped := 0
	for _, row := range table.Rows {
		canonical := remapRow(row, maps.playerMap)
		for raw, field := range maps.projectionMap {
			if value, ok := row[raw]; ok && canonical[field] == "" {
				canonical[field] = value
			}
		}

		name := strings.TrimSpace(canonical[fieldName])
		position := strings.TrimSpace(canonical[fieldPosition])
		if name == "" || position == "" {
			skipped++
			continue
		}

		playerID, ok := lookup[name]
		if !ok {
			playerID, ok = lookup[player.CompositeKey(name, player.Position(position))]
		}
		if !ok || playerID == "" {
			skipped++
			continue
		}

		out = append(out, projection.Record{
			PlayerID: playerID,
			Season:   season,
			Week:     week,
			Source:   source,
			Stats: projection.StatLine{
				PassAtt:    toDecimal(canonical[fieldPassAtt]),
				PassCmp:    toDecimal(canonical[fieldPassCmp]),
				PassYds:    toDecimal(canonical[fieldPassYds]),
				PassTds:    toDecimal(canonical[fieldPassTds]),
				PassInts:   toDecimal(canonical[fieldPassInts]),
				RushAtt:    toDecimal(canonical[fieldRushAtt]),
				RushYds:    toDecimal(canonical[fieldRushYds]),
				RushTds:    toDecimal(canonical[fieldRushTds]),
				Receptions: toDecimal(canonical[fieldReceptions]),
				RecYds:     toDecimal(canonical[fieldRecYds]),
				RecTds:     toDecimal(canonical[fieldRecTds]),
				Targets:    toDecimal(canonical[fieldTargets]),
				Fumbles:    toDecimal(canonical[fieldFumbles]),
			},
		})
	}
	return out, skipped, nil
}

func (m *Mapper) sourceMaps(source string) (sourceMaps, error) {
	maps, ok := m.sources[source]
	if !ok {
		return sourceMaps{}, errors.Wrapf(ErrMapping, "unknown data source %q", source)
	}
	return maps, nil
}

// remapRow applies a column map to one row. When multiple raw columns feed
// the same field, the first non-empty value wins.
func remapRow(row Row, columnMap map[string]string) map[string]string {
	out := make(map[string]string, len(columnMap))
	for raw, field := range columnMap {
		value, ok := row[raw]
		if !ok || value == "" {
			continue
		}
		if out[field] == "" {
			out[field] = value
		}
	}
	return out
}

// parseExternalID keeps only cleanly numeric identifiers. Sources that use
// opaque string ids yield nil rather than an error.
func parseExternalID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// toDecimal parses a cell into a nullable decimal. Empty, "NA", and
// unparseable cells read as absent, never as zero.
func toDecimal(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "na") || strings.EqualFold(raw, "nan") {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
