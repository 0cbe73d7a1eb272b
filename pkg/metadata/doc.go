// Package metadata reads and writes the sidecar document that sits next to
// the notes of a root directory.
//
// The document holds everything that does not belong to a single note: folder
// groupings, pinned notes, an optional folder order and app settings. Reads
// never fail. A missing, unreadable or corrupt file yields Default(), so a
// broken sidecar cannot block access to the notes themselves.
//
// Older releases stored the document as a hidden file (LegacyFileName). Read
// copies it over the current file (ConfigFileName) when the current file is
// missing or has no folder groupings yet. The copy is repeated on every read
// until the current file carries folders of its own.
package metadata
