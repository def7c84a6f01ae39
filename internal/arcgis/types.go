package arcgis

import "encoding/json"

// FeaturePage is one page of a layer query response. Both GeoJSON
// (f=geojson) and Esri JSON (f=json) responses decode into it.
type FeaturePage struct {
	Type                  string       `json:"type"`
	Features              []RawFeature `json:"features"`
	ExceededTransferLimit bool         `json:"exceededTransferLimit"`
	Properties            *struct {
		ExceededTransferLimit bool `json:"exceededTransferLimit"`
	} `json:"properties"`
	Error *APIError `json:"error"`
}

// TransferLimitExceeded reports whether the server flagged more results.
// GeoJSON responses carry the flag under "properties".
func (p *FeaturePage) TransferLimitExceeded() bool {
	if p.ExceededTransferLimit {
		return true
	}
	return p.Properties != nil && p.Properties.ExceededTransferLimit
}

// RawFeature is a feature as delivered by the server. The geometry payload
// is left undecoded; it may be GeoJSON- or Esri-shaped. Attributes arrive
// under "properties" (GeoJSON) or "attributes" (Esri JSON).
type RawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
	Attributes json.RawMessage `json:"attributes"`
}

// AttributePayload returns the raw attribute object. Properties take
// precedence when present and non-null.
func (f RawFeature) AttributePayload() json.RawMessage {
	if isPresent(f.Properties) {
		return f.Properties
	}
	if isPresent(f.Attributes) {
		return f.Attributes
	}
	return nil
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// APIError is the error object ArcGIS returns, often with HTTP 200.
type APIError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}
