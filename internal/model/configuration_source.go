package model

// SourceKind tells where a configuration entry came from.
type SourceKind string

const (
	// SourceSystemDefault marks entries derived from type metadata only.
	SourceSystemDefault SourceKind = "system-default"
	// SourceUser marks entries authored by the user in a document.
	SourceUser SourceKind = "user"
)

// ConfigurationSource is the provenance of a configuration entry.
type ConfigurationSource struct {
	Kind             SourceKind
	DocumentFilePath string
}

// SystemDefaultSource is the provenance of derived defaults.
func SystemDefaultSource() ConfigurationSource {
	return ConfigurationSource{Kind: SourceSystemDefault}
}

// UserSource is the provenance of an entry authored in documentFilePath.
func UserSource(documentFilePath string) ConfigurationSource {
	return ConfigurationSource{Kind: SourceUser, DocumentFilePath: documentFilePath}
}

// IsSystemDefault reports whether the entry was derived rather than authored.
func (s ConfigurationSource) IsSystemDefault() bool {
	return s.Kind == "" || s.Kind == SourceSystemDefault
}
