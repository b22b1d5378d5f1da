package upload

// Kind names an upload state
type Kind string

const (
	KindIdle         Kind = "idle"
	KindFileSelected Kind = "file_selected"
	KindUploaded     Kind = "uploaded"
	KindFailed       Kind = "failed"
)

// File is a staged copy of the file the user selected
type File struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
	Path        string `json:"-"`
}

// State is one of Idle, FileSelected, Uploaded or Failed
type State interface {
	Kind() Kind
	isState()
}

// Idle means no file has been chosen
type Idle struct{}

// FileSelected holds a staged file that has not been uploaded yet
type FileSelected struct {
	File File
}

// Uploaded holds the file and the URL the adapter returned for it
type Uploaded struct {
	File File
	URL  string
}

// Failed holds the file whose upload did not complete
type Failed struct {
	File   File
	Reason string
}

func (Idle) Kind() Kind         { return KindIdle }
func (FileSelected) Kind() Kind { return KindFileSelected }
func (Uploaded) Kind() Kind     { return KindUploaded }
func (Failed) Kind() Kind       { return KindFailed }

func (Idle) isState()         {}
func (FileSelected) isState() {}
func (Uploaded) isState()     {}
func (Failed) isState()       {}

// FileOf returns the file carried by s, if any
func FileOf(s State) (File, bool) {
	switch st := s.(type) {
	case FileSelected:
		return st.File, true
	case Uploaded:
		return st.File, true
	case Failed:
		return st.File, true
	default:
		return File{}, false
	}
}

// ResultURL returns the upload URL, which only the Uploaded state carries
func ResultURL(s State) (string, bool) {
	if st, ok := s.(Uploaded); ok {
		return st.URL, true
	}
	return "", false
}

// Session is the transient upload state of one browser
type Session struct {
	ID    string
	State State
}

// NewSession returns an Idle session
func NewSession(id string) *Session {
	return &Session{ID: id, State: Idle{}}
}
