package nav

import "energy-report/internal/model"

// RenderSink receives transformed datasets for display. It is the
// chart-rendering boundary: implementations draw, print, or record, and
// the controller never inspects what they do. A nil dataset means the
// fetch for that section failed and dependent summary output should show
// "No Data".
type RenderSink interface {
	RenderEnergy(date string, d *model.EnergyData)
	RenderBids(date string, d *model.BidData)
	RenderCatalog(months model.ReportMonths)
}

// UISink receives page-level UI updates: the current page identity (title
// and URL in a browser, window title in a terminal) and per-section
// skeleton states. Implementations should map states to effects through
// model.SkeletonEffects rather than switching per section.
type UISink interface {
	SetPage(date string, g model.Granularity)
	SetSkeleton(section model.Section, state model.SkeletonState)
}

// DownloadSink triggers a CSV export retrieval, the analog of an
// anchor-click on a download link.
type DownloadSink interface {
	Download(url string) error
}
