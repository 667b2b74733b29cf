package model

// Section identifies one independently-loading dashboard region.
type Section string

const (
	SectionEnergy Section = "energy"
	SectionMarket Section = "market"
	SectionDates  Section = "dates"
)

// SkeletonState is the loading state of one section's placeholder.
//
// Transitions: Hidden/Error -> Visible on fetch start, Visible -> Hidden on
// success, Visible -> Error on transport or validation failure. There is no
// retry transition; recovery only happens through a new navigation event.
type SkeletonState string

const (
	SkeletonHidden  SkeletonState = "hidden"
	SkeletonVisible SkeletonState = "visible"
	SkeletonError   SkeletonState = "error"
)

// SkeletonEffect describes what a UI implementation should do for a
// skeleton state. One shared table replaces per-section switch statements;
// sinks look their effect up instead of branching.
type SkeletonEffect struct {
	ShowPlaceholder bool
	ErrorStyle      bool
	ShowContent     bool
}

// SkeletonEffects maps each skeleton state onto its UI effect.
var SkeletonEffects = map[SkeletonState]SkeletonEffect{
	SkeletonHidden:  {ShowContent: true},
	SkeletonVisible: {ShowPlaceholder: true},
	SkeletonError:   {ShowPlaceholder: true, ErrorStyle: true},
}
