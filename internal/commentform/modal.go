package commentform

// Modal is the open/closed state of the comment dialog. The zero value is closed.
type Modal struct {
	open bool
}

// Toggle flips the modal between closed and open.
func (m *Modal) Toggle() {
	m.open = !m.open
}

// IsOpen reports whether the modal is open.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Widget is the comment entry point of a campsite page: a button that opens
// a modal holding a fresh draft form.
type Widget struct {
	campsiteID int64
	add        AddCommentFunc
	modal      Modal
	form       *Form
}

// NewWidget returns a closed widget for a campsite.
func NewWidget(campsiteID int64, add AddCommentFunc) *Widget {
	return &Widget{campsiteID: campsiteID, add: add}
}

// Toggle opens or closes the modal. Opening starts a new draft; closing
// discards the live draft. A successful submit closes through here too.
func (w *Widget) Toggle() {
	w.modal.Toggle()
	if w.modal.IsOpen() {
		w.form = NewForm(w.campsiteID, w.add, w.Toggle)
		return
	}
	if w.form != nil {
		w.form.Cancel()
		w.form = nil
	}
}

// Open opens the modal if it is closed.
func (w *Widget) Open() {
	if !w.modal.IsOpen() {
		w.Toggle()
	}
}

// Dismiss closes the modal without submitting, if it is open.
func (w *Widget) Dismiss() {
	if w.modal.IsOpen() {
		w.Toggle()
	}
}

// IsOpen reports whether the modal is open.
func (w *Widget) IsOpen() bool {
	return w.modal.IsOpen()
}

// Form returns the live draft form, or nil when the modal is closed.
func (w *Widget) Form() *Form {
	return w.form
}

// CampsiteID returns the campsite the widget comments on.
func (w *Widget) CampsiteID() int64 {
	return w.campsiteID
}
