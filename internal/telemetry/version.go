package telemetry

import "strings"

// splitVersion breaks a semantic version into its major, minor and patch
// parts for the version gauge labels. Parts that are absent or not numeric
// come back empty rather than failing; any pre-release or build suffix is
// stripped from the patch part.
func splitVersion(version string) (major, minor, patch string) {
	v := strings.TrimPrefix(version, "v")
	if v == "" {
		return "", "", ""
	}

	parts := strings.SplitN(v, ".", 3)
	if len(parts) > 0 {
		major = numericPart(parts[0])
	}
	if len(parts) > 1 {
		minor = numericPart(parts[1])
	}
	if len(parts) > 2 {
		patch = numericPart(parts[2])
	}
	return major, minor, patch
}

// numericPart returns the leading digits of s, or "" when s does not start
// with a digit.
func numericPart(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}
