// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tomtom215/trackview/internal/logging"
	"github.com/tomtom215/trackview/internal/models"
)

var errEmptyBody = errors.New("empty response body")

// decodeLastPositions accepts both shapes /last is seen with: a JSON array
// of records, or an object keyed by topic.
func decodeLastPositions(body []byte) ([]models.LastPosition, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errEmptyBody
	}

	switch trimmed[0] {
	case '[':
		var list []models.LastPosition
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to decode /last array: %w", err)
		}
		if list == nil {
			list = []models.LastPosition{}
		}
		return list, nil
	case '{':
		return decodeLastObject(trimmed)
	default:
		return nil, fmt.Errorf("unexpected /last payload starting with %q", trimmed[0])
	}
}

// decodeLastObject walks the topic-keyed form in document order, so users
// and devices come out in the order the recorder listed them. An entry
// without its own topic takes the key.
func decodeLastObject(body []byte) ([]models.LastPosition, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode /last object: %w", err)
	}

	list := []models.LastPosition{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode /last object: %w", err)
		}
		topic, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected /last key %v", tok)
		}

		var pos models.LastPosition
		if err := dec.Decode(&pos); err != nil {
			return nil, fmt.Errorf("failed to decode /last entry %q: %w", topic, err)
		}
		if pos.Topic == "" {
			pos.Topic = topic
		}
		list = append(list, pos)
	}
	return list, nil
}

// decodeLocationsJSON returns the data array as-is; a missing array is empty.
func decodeLocationsJSON(body []byte) ([]models.LocationPoint, error) {
	var resp models.LocationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	if resp.Data == nil {
		return []models.LocationPoint{}, nil
	}
	return resp.Data, nil
}

// decodeLocationsGeoJSON maps each Point feature to a location: properties
// are copied and lat/lon come from the [lon, lat] geometry. Features with
// any other geometry are skipped. A mistyped property is dropped, never
// the feature.
func decodeLocationsGeoJSON(body []byte) ([]models.LocationPoint, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode geojson locations: %w", err)
	}

	points := make([]models.LocationPoint, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}

		var p models.LocationPoint
		if bad := decodeProperties(f.Properties, &p); len(bad) > 0 {
			logging.Warn().Strs("properties", bad).Msg("Ignoring mistyped feature properties")
		}
		p.Lon = pt.Lon()
		p.Lat = pt.Lat()
		points = append(points, p)
	}
	return points, nil
}

// decodeProperties copies feature properties into p. When the set as a whole
// does not decode, each property is applied on its own and the keys that
// still fail are returned, sorted.
func decodeProperties(props geojson.Properties, p *models.LocationPoint) []string {
	if len(props) == 0 {
		return nil
	}
	if raw, err := json.Marshal(props); err == nil && json.Unmarshal(raw, p) == nil {
		return nil
	}

	*p = models.LocationPoint{}
	var bad []string
	for key, value := range props {
		raw, err := json.Marshal(map[string]interface{}{key: value})
		if err != nil || json.Unmarshal(raw, p) != nil {
			bad = append(bad, key)
		}
	}
	sort.Strings(bad)
	return bad
}

// decodeLocationsLineString maps a single LineString feature to points.
// The geometry carries no per-vertex time, so tst is synthesized as
// now - index seconds: strictly decreasing along the line. Treat these
// timestamps as ordering hints only.
func decodeLocationsLineString(body []byte, now time.Time) ([]models.LocationPoint, error) {
	f, err := geojson.UnmarshalFeature(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode linestring feature: %w", err)
	}

	line, ok := f.Geometry.(orb.LineString)
	if !ok {
		return []models.LocationPoint{}, nil
	}

	base := now.Unix()
	points := make([]models.LocationPoint, 0, len(line))
	for idx, coord := range line {
		points = append(points, models.LocationPoint{
			Type: "location",
			Lat:  coord.Lat(),
			Lon:  coord.Lon(),
			Tst:  base - int64(idx),
		})
	}
	return points, nil
}
