package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// scopeFromQuery collects scope constraints from "scope."-prefixed query
// parameters: ?scope.population=adults becomes {"population": "adults"}.
// Returns nil when no constraints are present, which means unfiltered.
func scopeFromQuery(query url.Values) map[string]string {
	var scope map[string]string
	for key, values := range query {
		name, ok := strings.CutPrefix(key, "scope.")
		if !ok || name == "" || len(values) == 0 {
			continue
		}
		if scope == nil {
			scope = make(map[string]string)
		}
		scope[name] = values[0]
	}
	return scope
}
