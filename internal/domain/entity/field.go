package entity

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldInt      FieldKind = "int"
	FieldDate     FieldKind = "date"
	FieldTime     FieldKind = "time"
	FieldEmail    FieldKind = "email"
	FieldURL      FieldKind = "url"
	FieldChoice   FieldKind = "choice"
	FieldFile     FieldKind = "file"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FieldSpec declares one input field of a service form. Services validate
// their fields in the order they are declared.
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Min      *int      `json:"min,omitempty"`
	Max      *int      `json:"max,omitempty"`
	Step     int       `json:"step,omitempty"`
	Default  string    `json:"default,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Pattern  string    `json:"pattern,omitempty"`
	Accept   []string  `json:"accept,omitempty"`
	Help     string    `json:"help,omitempty"`
}

func Bound(n int) *int {
	return &n
}
