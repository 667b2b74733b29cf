package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"energy-report/internal/config"
	"energy-report/internal/data"
	"energy-report/internal/model"
	"energy-report/internal/nav"

	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	date := flag.String("date", "", "Report date (YYYY-MM or YYYY-MM-DD); defaults to today")
	download := flag.Bool("download", false, "Save the CSV exports for the loaded date")
	outDir := flag.String("out", "exports", "Directory for downloaded CSV exports")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}

	client := data.NewReportClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	dl := &fileDownloader{client: client, outDir: *outDir}
	ctrl := nav.New(client, &termUI{}, &termRender{}, dl)

	ctx := context.Background()
	if err := ctrl.Start(ctx, *date); err != nil {
		logrus.Fatalf("startup failed: %v", err)
	}
	ctrl.Wait()

	if *download {
		if err := ctrl.Download(); err != nil {
			logrus.Fatalf("download failed: %v", err)
		}
	}
}

// termUI prints page and section updates to the terminal, standing in for
// the browser's title bar and skeleton placeholders.
type termUI struct{}

func (*termUI) SetPage(date string, g model.Granularity) {
	fmt.Printf("\n=== Energy Report: %s (%s view) ===\n", date, g)
}

func (*termUI) SetSkeleton(section model.Section, state model.SkeletonState) {
	eff := model.SkeletonEffects[state]
	switch {
	case eff.ErrorStyle:
		fmt.Printf("[%s] failed to load\n", section)
	case eff.ShowPlaceholder:
		fmt.Printf("[%s] loading...\n", section)
	case eff.ShowContent:
		fmt.Printf("[%s] ready\n", section)
	}
}

// termRender prints the summary cards the dashboard derives from each
// dataset. A nil dataset renders as "No Data".
type termRender struct{}

func (*termRender) RenderEnergy(date string, d *model.EnergyData) {
	if d == nil {
		fmt.Println("Energy: No Data")
		return
	}
	fmt.Printf("Energy %s: %d intervals\n", date, d.Len())
	fmt.Printf("  carbon saved (predicted): %.2f\n", d.PredictedCarbonSaved)
	fmt.Printf("  carbon saved (real):      %.2f\n", d.RealCarbonSaved)
}

func (*termRender) RenderBids(date string, d *model.BidData) {
	if d == nil {
		fmt.Println("Market: No Data")
		return
	}
	fmt.Printf("Market %s: %d bids\n", date, len(d.Bids))
	fmt.Printf("  profit:        %.2f\n", d.Profit)
	fmt.Printf("  volume sold:   %.2f MWh\n", d.VolumeSold)
	fmt.Printf("  volume bought: %.2f MWh\n", d.VolumeBought)
	fmt.Printf("  volume total:  %.2f MWh\n", d.TotalVolume)
}

func (*termRender) RenderCatalog(months model.ReportMonths) {
	fmt.Printf("Catalog: %d months\n", len(months))
	for _, m := range months {
		fmt.Printf("  %s %d: %d days\n", m.Name, m.Year, len(m.Days))
	}
}

// fileDownloader saves CSV exports to disk, the terminal analog of the
// browser's anchor-click download.
type fileDownloader struct {
	client *data.ReportClient
	outDir string
}

func (f *fileDownloader) Download(url string) error {
	body, err := f.client.FetchExport(context.Background(), url)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(f.outDir, exportFileName(url))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}

// exportFileName maps an export URL onto the upstream CSV naming:
// .../downloads/energy/2021-07-22 -> 2021-07-22.csv,
// .../downloads/bids/2021-07-22 -> 2021-07-22-bids.csv.
func exportFileName(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	date := parts[len(parts)-1]
	if len(parts) >= 2 && parts[len(parts)-2] == "bids" {
		return date + "-bids.csv"
	}
	return date + ".csv"
}
