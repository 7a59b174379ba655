package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"shroud/internal/ui/input/types"
)

// FieldEditMode types into a form field of the displayed page
type FieldEditMode struct {
	TextInputMode
}

func NewFieldEditMode(ti *textinput.Model) *FieldEditMode {
	return &FieldEditMode{
		TextInputMode: NewTextInputMode(types.ModeFieldEdit, "edit field", ti),
	}
}
