package md2overleaf

import "strings"

// VaultPlaceholder is the token in configured script paths that expands to
// the vault root at job start.
const VaultPlaceholder = "{vault}"

// ExpandVaultPath substitutes the vault placeholder in a path template.
// A template without the placeholder is returned unchanged.
func ExpandVaultPath(template, vaultRoot string) string {
	return strings.ReplaceAll(template, VaultPlaceholder, vaultRoot)
}
