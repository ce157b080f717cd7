package ruffle

import "fmt"

// ContentKind distinguishes the kinds of content a clip can be
// instantiated from.
type ContentKind uint8

const (
	ContentSprite ContentKind = iota // container with a timeline
	ContentShape                     // static vector shape
	ContentText                      // dynamic text field
)

// ContentDef is an immutable definition a clip is instantiated from: the
// static description the file-format parser produced for one character.
type ContentDef struct {
	ID         uint16 // character id, shared by every instance
	ExportName string // linkage name for scripted attach, "" if not exported
	Kind       ContentKind
	FrameCount uint16
	Labels     map[string]uint16 // label -> 1-based frame
	Bounds     Bounds            // design-space extent
	ByteSize   uint32
}

// ContentSource resolves content definitions into fresh clips. The
// file-format parser side of this contract lives outside this package.
type ContentSource interface {
	// InstantiateByExportName creates a clip from the definition exported
	// under the given linkage name.
	InstantiateByExportName(name string) (*Clip, error)
	// InstantiateByID creates a clip from the definition with the given
	// character id, used when duplicating an existing instance.
	InstantiateByID(id uint16) (*Clip, error)
}

// Library is an in-memory ContentSource: a registry of content
// definitions keyed by character id and export name.
type Library struct {
	byID   map[uint16]*ContentDef
	byName map[string]*ContentDef
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		byID:   make(map[uint16]*ContentDef),
		byName: make(map[string]*ContentDef),
	}
}

// Register adds a definition to the library. A non-empty ExportName makes
// it reachable by scripted attach.
func (l *Library) Register(def *ContentDef) {
	l.byID[def.ID] = def
	if def.ExportName != "" {
		l.byName[def.ExportName] = def
	}
}

// InstantiateByExportName implements ContentSource.
func (l *Library) InstantiateByExportName(name string) (*Clip, error) {
	def, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("no exported character %q", name)
	}
	return newClip(def, ""), nil
}

// InstantiateByID implements ContentSource.
func (l *Library) InstantiateByID(id uint16) (*Clip, error) {
	def, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("no character with id %d", id)
	}
	return newClip(def, ""), nil
}
