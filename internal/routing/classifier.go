package routing

import (
	"net/http"
	"strings"
)

// Classify maps the routing metadata of a completed request to a stable
// route label, or reports that no label can be safely derived.
//
// Precedence, first applicable wins:
//  1. an alternate routing descriptor's pattern is used verbatim;
//  2. a base path plus a matched pattern are concatenated, dropping the
//     pattern when it is exactly the root path;
//  3. without a base path the matched pattern is preferred, then the raw
//     request path.
//
// Every resolved path parameter's concrete value is then replaced by a
// ":name" placeholder within the label.
//
// When the host framework resolved no route at all and the request ended in
// 404, no label is derived: an unmatched raw path is caller-controlled, and
// recording it would leak unbounded cardinality into the registry. Callers
// must skip recording entirely in that case.
func Classify(info RouteInfo, statusCode int) (string, bool) {
	if info.AltPattern == "" && info.Pattern == "" && statusCode == http.StatusNotFound {
		return "", false
	}

	var label string
	switch {
	case info.AltPattern != "":
		label = info.AltPattern
	case info.BasePath != "":
		label = info.BasePath
		if info.Pattern != "" && info.Pattern != "/" {
			label += info.Pattern
		}
	case info.Pattern != "":
		label = info.Pattern
	default:
		label = info.RawPath
	}

	if label == "" {
		return "", false
	}

	for name, value := range info.Params {
		if value == "" {
			continue
		}
		label = strings.ReplaceAll(label, value, ":"+name)
	}

	return label, true
}
