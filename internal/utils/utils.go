// File: internal/utils/utils.go
package utils

import "strings"

// The dashboard API takes its two query parameters in a house format:
// "filters" is a ;-separated list of name=value pairs and "structure" is a
// JSON object mapping each requested field to its output alias. Both are
// built here from already-validated maps, so these functions have no
// failure mode. Pair order follows map iteration and is deliberately
// unspecified; the server treats it as insignificant.

// FilterClause converts accumulated filters to the value of the "filters"
// query parameter.
func FilterClause(filters map[string]string) string {
	var clause string
	for name, value := range filters {
		clause += name + "=" + value + ";"
	}
	return strings.TrimSuffix(clause, ";")
}

// StructureClause converts requested structure fields to the value of the
// "structure" query parameter.
func StructureClause(structure map[string]string) string {
	var clause string
	for field, alias := range structure {
		clause += `"` + field + `":"` + alias + `",`
	}
	return "{" + strings.TrimSuffix(clause, ",") + "}"
}

// BuildRequestURL assembles the complete query URL for one request. The
// filters clause comes first when present, then the structure clause (led
// by "?" only when no filters clause was emitted), then the fixed
// format/page suffix, which is appended unconditionally.
func BuildRequestURL(endpoint string, filters, structure map[string]string) string {
	url := endpoint
	if len(filters) > 0 {
		url += "?filters=" + FilterClause(filters)
	}
	if len(structure) > 0 {
		if len(filters) == 0 {
			url += "?structure="
		} else {
			url += "&structure="
		}
		url += StructureClause(structure)
	}
	return url + "&format=json&page=1"
}
