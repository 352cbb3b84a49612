package screen

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// numericEntry is an entry that asks mobile drivers for a number keypad.
type numericEntry struct {
	widget.Entry
	onFocusLost func()
}

func newNumericEntry() *numericEntry {
	entry := &numericEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// Keyboard implements mobile.Keyboardable.
func (entry *numericEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// FocusLost implements fyne.Focusable.
func (entry *numericEntry) FocusLost() {
	entry.Entry.FocusLost()
	if entry.onFocusLost != nil {
		entry.onFocusLost()
	}
}
