// FILE: logship/src/internal/tls/parse.go
package tls

import (
	"crypto/tls"
	"fmt"
	"strings"
)

var versions = map[string]uint16{
	"TLS1.2": tls.VersionTLS12,
	"TLS1.3": tls.VersionTLS13,
}

// parseTLSVersion maps "TLS1.2"/"TLS1.3" to crypto/tls constants, anything else to def.
func parseTLSVersion(version string, def uint16) uint16 {
	if v, ok := versions[strings.ToUpper(strings.TrimSpace(version))]; ok {
		return v
	}
	return def
}

// parseCipherSuites resolves names against the suites Go considers secure; unknown names are skipped.
func parseCipherSuites(names string) []uint16 {
	known := make(map[string]uint16)
	for _, s := range tls.CipherSuites() {
		known[s.Name] = s.ID
	}

	var ids []uint16
	for _, name := range strings.Split(names, ",") {
		if id, ok := known[strings.TrimSpace(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func tlsVersionString(version uint16) string {
	for name, v := range versions {
		if v == version {
			return name
		}
	}
	return fmt.Sprintf("0x%04x", version)
}
