package domain

// UIState is the mutually exclusive visible state of a search surface.
type UIState int

const (
	// StateIdle shows no result, empty or error region.
	StateIdle UIState = iota
	// StateLoading is visible only while a request is outstanding.
	StateLoading
	// StateResults shows ranked results.
	StateResults
	// StateEmpty shows the explicit no-results notice.
	StateEmpty
	// StateError shows exactly one error message.
	StateError
)

// String returns the string representation of the state.
func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Submit control labels.
const (
	SubmitLabelIdle = "Search"
	SubmitLabelBusy = "Searching..."
)

// ViewState is the single owned description of what a search surface shows.
// Adapters render it; they never read presentation back for decisions.
type ViewState struct {
	State UIState

	// SubmitEnabled is false only while Loading.
	SubmitEnabled bool

	// SubmitLabel is the submit control caption.
	SubmitLabel string

	// Rendering is set only in StateResults.
	Rendering *Rendering

	// ErrorMessage is set only in StateError.
	ErrorMessage string

	// Seq is the sequence number of the submission that produced this state.
	Seq uint64
}

// IdleViewState returns the initial state.
func IdleViewState() ViewState {
	return ViewState{
		State:         StateIdle,
		SubmitEnabled: true,
		SubmitLabel:   SubmitLabelIdle,
	}
}

// ResultsVisible reports whether the results region is shown.
func (v ViewState) ResultsVisible() bool { return v.State == StateResults }

// EmptyVisible reports whether the no-results notice is shown.
func (v ViewState) EmptyVisible() bool { return v.State == StateEmpty }

// ErrorVisible reports whether the error region is shown.
func (v ViewState) ErrorVisible() bool { return v.State == StateError }

// LoadingVisible reports whether the loading indicator is shown.
func (v ViewState) LoadingVisible() bool { return v.State == StateLoading }
