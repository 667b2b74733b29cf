// Package nav owns dashboard navigation: the current page date, the
// per-section skeleton state machines, and the orchestration of the two
// concurrent per-date fetch pipelines.
package nav

import (
	"context"
	"fmt"
	"sync"
	"time"

	"energy-report/internal/catalog"
	"energy-report/internal/data"
	"energy-report/internal/model"
	"energy-report/internal/transform"
	"energy-report/internal/validate"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "nav")

// ErrLoading is returned by Download while a navigation's fetch group is
// still settling.
var ErrLoading = fmt.Errorf("data is still loading")

// Controller coordinates navigation events against the report API.
//
// Each navigation issues the energy and bid pipelines concurrently. The
// pipelines settle independently and update their own section state and
// cached dataset immediately; the shared in-flight counter covers the pair
// as one group and only returns to zero once both have settled. A new
// navigation does not cancel pipelines already in flight, so a slow stale
// response can overwrite a newer one; that matches the observed upstream
// behavior and is deliberately left unguarded.
type Controller struct {
	client   *data.ReportClient
	ui       UISink
	render   RenderSink
	download DownloadSink

	// OnLoaded, when set, fires each time the in-flight counter returns
	// to zero. Set it before the first navigation.
	OnLoaded func(date string)

	// Now supplies the current time for startup date seeding.
	Now func() time.Time

	mu          sync.Mutex
	months      model.ReportMonths
	pageDate    string
	granularity model.Granularity
	sections    map[model.Section]model.SkeletonState
	inFlight    int
	bids        *model.BidData
	bidsOK      bool
	energy      *model.EnergyData
	energyOK    bool

	pending sync.WaitGroup
}

// New creates a controller. All three sinks are required.
func New(client *data.ReportClient, ui UISink, render RenderSink, download DownloadSink) *Controller {
	return &Controller{
		client:   client,
		ui:       ui,
		render:   render,
		download: download,
		Now:      time.Now,
		sections: map[model.Section]model.SkeletonState{
			model.SectionEnergy: model.SkeletonHidden,
			model.SectionMarket: model.SkeletonHidden,
			model.SectionDates:  model.SkeletonHidden,
		},
	}
}

// Start performs session startup: fetch the date catalog once, seed the
// target date from queryDate (when present and valid) or from today, and
// navigate to the resolved date. A target with no exact match falls back
// to another day in the same month; a target whose month is absent stops
// startup without fetching report data.
func (c *Controller) Start(ctx context.Context, queryDate string) error {
	c.setSection(model.SectionDates, model.SkeletonVisible)

	payload, err := c.client.GetDates(ctx)
	if err != nil {
		return c.failDates(err)
	}
	if !validate.Response(payload, validate.KindDates) {
		return c.failDates(fmt.Errorf("dates payload failed validation"))
	}
	months, err := transform.Dates(payload)
	if err != nil {
		return c.failDates(err)
	}

	c.mu.Lock()
	c.months = months
	c.mu.Unlock()
	c.render.RenderCatalog(months)
	c.setSection(model.SectionDates, model.SkeletonHidden)

	target := queryDate
	if target != "" {
		if _, err := model.ParseDate(target); err != nil {
			log.Warnf("ignoring query date: %v", err)
			target = ""
		}
	}
	if target == "" {
		target = c.Now().Format("2006-01-02")
	}

	res, err := catalog.Resolve(months, target)
	if err != nil {
		log.Errorf("startup resolution: %v", err)
		return err
	}
	if !res.Exact && res.Day == nil {
		log.Errorf("month %s has no report days", res.Month.Date)
		return &catalog.ResolutionError{Target: target}
	}
	if !res.Exact {
		log.Infof("no report for %s, using %s", target, res.Date())
	}
	return c.ChangeDate(ctx, res.Date())
}

// ChangeDate navigates to a day ("YYYY-MM-DD") or month ("YYYY-MM"). A
// syntactically invalid date is rejected with no state change. Otherwise
// the call returns immediately while the energy and bid pipelines run;
// use Wait or OnLoaded to observe completion.
func (c *Controller) ChangeDate(ctx context.Context, date string) error {
	g, err := model.ParseDate(date)
	if err != nil {
		log.Errorf("rejecting navigation: %v", err)
		return err
	}

	c.mu.Lock()
	c.pageDate = date
	c.granularity = g
	c.inFlight++
	c.mu.Unlock()
	c.ui.SetPage(date, g)

	var group sync.WaitGroup
	group.Add(2)
	go func() {
		defer group.Done()
		c.runEnergy(ctx, date)
	}()
	go func() {
		defer group.Done()
		c.runBids(ctx, date)
	}()

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		group.Wait()
		c.mu.Lock()
		c.inFlight--
		idle := c.inFlight == 0
		c.mu.Unlock()
		if idle && c.OnLoaded != nil {
			c.OnLoaded(date)
		}
	}()
	return nil
}

// Wait blocks until every navigation issued so far has fully settled.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Download triggers one export retrieval per dataset whose last fetch
// succeeded. It refuses with ErrLoading while any fetch group is in
// flight.
func (c *Controller) Download() error {
	c.mu.Lock()
	if c.inFlight != 0 {
		c.mu.Unlock()
		log.Error("download refused: data is still loading")
		return ErrLoading
	}
	date := c.pageDate
	energyOK := c.energyOK
	bidsOK := c.bidsOK
	c.mu.Unlock()

	var firstErr error
	if energyOK {
		if err := c.download.Download(c.client.EnergyExportURL(date)); err != nil {
			log.Errorf("energy export for %s: %v", date, err)
			firstErr = err
		}
	}
	if bidsOK {
		if err := c.download.Download(c.client.BidsExportURL(date)); err != nil {
			log.Errorf("bids export for %s: %v", date, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// PageDate returns the current page date and its granularity.
func (c *Controller) PageDate() (string, model.Granularity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageDate, c.granularity
}

// SectionState returns the skeleton state of one section.
func (c *Controller) SectionState(s model.Section) model.SkeletonState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sections[s]
}

// InFlight returns the number of unsettled navigation fetch groups.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Months returns the date catalog loaded at startup.
func (c *Controller) Months() model.ReportMonths {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.months
}

// EnergyData returns the last fetched energy dataset and whether the last
// energy fetch succeeded.
func (c *Controller) EnergyData() (*model.EnergyData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.energy, c.energyOK
}

// BidData returns the last fetched bid dataset and whether the last bid
// fetch succeeded.
func (c *Controller) BidData() (*model.BidData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bids, c.bidsOK
}

func (c *Controller) runEnergy(ctx context.Context, date string) {
	c.setSection(model.SectionEnergy, model.SkeletonVisible)

	payload, err := c.client.GetReport(ctx, date)
	if err != nil {
		c.failEnergy(date, err)
		return
	}
	if !validate.Response(payload, validate.KindEnergy) {
		c.failEnergy(date, fmt.Errorf("energy payload failed validation"))
		return
	}
	d, err := transform.Energy(payload)
	if err != nil {
		c.failEnergy(date, err)
		return
	}

	c.mu.Lock()
	c.energy = d
	c.energyOK = true
	c.mu.Unlock()
	c.render.RenderEnergy(date, d)
	c.setSection(model.SectionEnergy, model.SkeletonHidden)
}

func (c *Controller) runBids(ctx context.Context, date string) {
	c.setSection(model.SectionMarket, model.SkeletonVisible)

	payload, err := c.client.GetBids(ctx, date)
	if err != nil {
		c.failBids(date, err)
		return
	}
	if !validate.Response(payload, validate.KindBids) {
		c.failBids(date, fmt.Errorf("bids payload failed validation"))
		return
	}
	d, err := transform.Bids(payload)
	if err != nil {
		c.failBids(date, err)
		return
	}

	c.mu.Lock()
	c.bids = d
	c.bidsOK = true
	c.mu.Unlock()
	c.render.RenderBids(date, d)
	c.setSection(model.SectionMarket, model.SkeletonHidden)
}

func (c *Controller) failEnergy(date string, err error) {
	log.Errorf("energy pipeline for %s: %v", date, err)
	c.mu.Lock()
	c.energy = nil
	c.energyOK = false
	c.mu.Unlock()
	c.render.RenderEnergy(date, nil)
	c.setSection(model.SectionEnergy, model.SkeletonError)
}

func (c *Controller) failBids(date string, err error) {
	log.Errorf("bids pipeline for %s: %v", date, err)
	c.mu.Lock()
	c.bids = nil
	c.bidsOK = false
	c.mu.Unlock()
	c.render.RenderBids(date, nil)
	c.setSection(model.SectionMarket, model.SkeletonError)
}

func (c *Controller) failDates(err error) error {
	log.Errorf("dates pipeline: %v", err)
	c.setSection(model.SectionDates, model.SkeletonError)
	return err
}

func (c *Controller) setSection(s model.Section, state model.SkeletonState) {
	c.mu.Lock()
	c.sections[s] = state
	c.mu.Unlock()
	c.ui.SetSkeleton(s, state)
}
