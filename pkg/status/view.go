package status

// Style carries the visual switches of the loading view
type Style struct {
	ThemePending bool // Transitional style until the theme is applied
	Connecting   bool // Inverted logo and background while connecting
	Syncing      bool
}

// View is everything the loading view needs to render one frame
type View struct {
	State DisplayState
	Style Style
	// Ready is true once nothing is left to wait for. Resolve reports Blank
	// both before the locale loads and after startup finished; Ready tells
	// the two apart.
	Ready bool
}

// Evaluate resolves a snapshot into a renderable view
func Evaluate(s Snapshot) View {
	state := Resolve(s)
	return View{
		State: state,
		Style: Style{
			ThemePending: IsThemePending(s),
			Connecting:   s.IsConnecting,
			Syncing:      s.IsSyncing,
		},
		Ready: state.Kind == Blank && s.HasLoadedCurrentLocale,
	}
}

var headlines = map[Kind]string{
	Connecting:          "Connecting to network",
	Reconnecting:        "Network connection lost - reconnecting",
	WaitingForSyncStart: "Connected - waiting for block syncing to start",
	Syncing:             "Syncing blocks",
	LoadingWalletData:   "Loading wallet data",
}

// Headline returns the default English message for the state, empty for Blank
func (d DisplayState) Headline() string {
	msg := headlines[d.Kind]
	if d.Kind == Syncing {
		return msg + " " + d.FormattedPercentage() + "%"
	}
	return msg
}

// ShowsSpinner reports whether the view renders a progress spinner
func (d DisplayState) ShowsSpinner() bool {
	return d.Kind == LoadingWalletData
}
