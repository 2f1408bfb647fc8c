package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Local JSON-LD @type names accepted as vehicle nodes.
var vehicleTypeNames = map[string]bool{
	"vehicle":    true,
	"car":        true,
	"automobile": true,
}

// ExtractJSONLD returns every JSON-LD object found in the document's
// application/ld+json script blocks. Top-level arrays are expanded and
// @graph containers flattened, so the result is a flat list of nodes.
// Malformed blocks are skipped; a page with no valid blocks yields nil.
func ExtractJSONLD(doc *goquery.Document) []map[string]any {
	var nodes []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var parsed any
		if err := json.Unmarshal([]byte(sel.Text()), &parsed); err != nil {
			return
		}
		nodes = appendJSONLDNodes(nodes, parsed)
	})
	return nodes
}

func appendJSONLDNodes(nodes []map[string]any, v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			nodes = appendJSONLDNodes(nodes, item)
		}
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				nodes = appendJSONLDNodes(nodes, item)
			}
			return nodes
		}
		nodes = append(nodes, t)
	}
	return nodes
}

// isVehicleNode reports whether the node's @type names a vehicle. Handles
// string and list types and strips IRI prefixes to the local name.
func isVehicleNode(node map[string]any) bool {
	for _, name := range typeNames(node) {
		if vehicleTypeNames[name] {
			return true
		}
	}
	return false
}

// isOrganizationNode reports whether the node describes the dealer entity
// (schema.org Organization or AutomotiveBusiness, including subtypes).
func isOrganizationNode(node map[string]any) bool {
	for _, name := range typeNames(node) {
		if strings.Contains(name, "organization") || strings.Contains(name, "automotivebusiness") {
			return true
		}
	}
	return false
}

// typeNames extracts lowercase local type names from a node's @type field.
func typeNames(node map[string]any) []string {
	var raw []any
	switch t := node["@type"].(type) {
	case string:
		raw = []any{t}
	case []any:
		raw = t
	default:
		return nil
	}

	names := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		// Strip IRI to the local name.
		if i := strings.LastIndexAny(s, "/#"); i >= 0 {
			s = s[i+1:]
		}
		names = append(names, strings.ToLower(s))
	}
	return names
}

// jsonldText coerces a JSON-LD value to plain text. Nested objects resolve
// through their name or @value member ({"@type": "Brand", "name": "Ford"}).
func jsonldText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return trimFloat(t)
	case map[string]any:
		if name := jsonldText(t["name"]); name != "" {
			return name
		}
		return jsonldText(t["@value"])
	}
	return ""
}

// firstOffer returns the node's offers object, unwrapping a list of offers
// to its first element.
func firstOffer(node map[string]any) map[string]any {
	switch t := node["offers"].(type) {
	case map[string]any:
		return t
	case []any:
		if len(t) > 0 {
			if offer, ok := t[0].(map[string]any); ok {
				return offer
			}
		}
	}
	return nil
}

// vehicleNode returns the first vehicle-typed JSON-LD node, if any.
func vehicleNode(nodes []map[string]any) (map[string]any, bool) {
	for _, node := range nodes {
		if isVehicleNode(node) {
			return node, true
		}
	}
	return nil, false
}

// trimFloat formats a JSON number without a spurious trailing ".00".
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
