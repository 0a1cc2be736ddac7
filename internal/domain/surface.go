package domain

import (
	"strings"
	"unicode"
)

// SurfaceLabel normalizes a delivery-surface tag into a friendly label.
func SurfaceLabel(surface string) string {
	if surface == "" {
		return ""
	}
	switch strings.ReplaceAll(strings.ToLower(surface), "_", "-") {
	case "frontdoor", "front-door":
		return "Front Door"
	case "vm", "virtual-machine":
		return "VM"
	}
	return titleCase(surface)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
